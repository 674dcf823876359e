package requests

import "github.com/shopspring/decimal"

type TopUpWallet struct {
	UserID          string          `json:"user_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"positive_decimal"`
	Description     string          `json:"description" validate:"max=255"`
	TransactionType string          `json:"transaction_type" validate:"omitempty,oneof=CREDIT PURCHASE ADJUSTMENT"`
}

type Pagination struct {
	Limit  int
	Offset int
}
