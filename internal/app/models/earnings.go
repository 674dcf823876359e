package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DoctorEarnings struct {
	DoctorID         string          `json:"doctor_id"`
	TotalEarned      decimal.Decimal `json:"total_earned"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved  WithdrawalStatus = "APPROVED"
	WithdrawalStatusCompleted WithdrawalStatus = "COMPLETED"
	WithdrawalStatusRejected  WithdrawalStatus = "REJECTED"
	WithdrawalStatusCancelled WithdrawalStatus = "CANCELLED"
)

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalStatusPending:  {WithdrawalStatusApproved, WithdrawalStatusRejected, WithdrawalStatusCancelled},
	WithdrawalStatusApproved: {WithdrawalStatusCompleted},
}

func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	for _, allowed := range withdrawalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Withdrawal struct {
	ID              string           `json:"id"`
	DoctorID        string           `json:"doctor_id"`
	Amount          decimal.Decimal  `json:"amount"`
	BankAccount     string           `json:"bank_account"`
	BankName        string           `json:"bank_name"`
	Status          WithdrawalStatus `json:"status"`
	Description     string           `json:"description"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
