package requests

import "github.com/shopspring/decimal"

type RequestWithdrawal struct {
	Amount      decimal.Decimal `json:"amount" validate:"positive_decimal"`
	BankAccount string          `json:"bank_account" validate:"required,max=64"`
	BankName    string          `json:"bank_name" validate:"required,max=128"`
}

type RejectWithdrawal struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
