package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeFreeze     TransactionType = "FREEZE"
	TransactionTypeUnfreeze   TransactionType = "UNFREEZE"
	TransactionTypeDebit      TransactionType = "DEBIT"
	TransactionTypeCredit     TransactionType = "CREDIT"
	TransactionTypePurchase   TransactionType = "PURCHASE"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

type Wallet struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Balance       decimal.Decimal `json:"balance"`
	FrozenBalance decimal.Decimal `json:"frozen_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// WalletTransaction is append-only. BalanceBefore and BalanceAfter describe
// the balance field the operation targeted, not the wallet total.
type WalletTransaction struct {
	ID                    string          `json:"id"`
	WalletID              string          `json:"wallet_id"`
	Type                  TransactionType `json:"transaction_type"`
	Amount                decimal.Decimal `json:"amount"`
	BalanceBefore         decimal.Decimal `json:"balance_before"`
	BalanceAfter          decimal.Decimal `json:"balance_after"`
	RelatedConsultationID *string         `json:"related_consultation_id,omitempty"`
	Description           string          `json:"description"`
	CreatedAt             time.Time       `json:"created_at"`
}
