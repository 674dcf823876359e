package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"

	"github.com/shopspring/decimal"
)

type WalletRepository interface {
	// FindOrCreateByUserID lazily creates the wallet on first access.
	FindOrCreateByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	// FindOrCreateByUserIDForUpdate is FindOrCreateByUserID holding the wallet
	// row lock until the surrounding transaction ends.
	FindOrCreateByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error)
	UpdateBalances(ctx context.Context, wallet *models.Wallet) error
	InsertTransaction(ctx context.Context, transaction *models.WalletTransaction) error
	FindTransactionsByWalletID(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error)
	FindAllTransactions(ctx context.Context, limit, offset int) ([]models.WalletTransaction, error)
}

// LedgerEntry describes one ledger mutation.
type LedgerEntry struct {
	UserID         string
	Amount         decimal.Decimal
	ConsultationID *string
	Description    string
}

type WalletUsecase interface {
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	ListTransactions(ctx context.Context, userID string, pagination *requests.Pagination) ([]models.WalletTransaction, error)
	ListAllTransactions(ctx context.Context, pagination *requests.Pagination) ([]models.WalletTransaction, error)
	TopUp(ctx context.Context, request *requests.TopUpWallet) (*models.WalletTransaction, error)
	Credit(ctx context.Context, entry LedgerEntry) (*models.WalletTransaction, error)
	CreditAs(ctx context.Context, transactionType models.TransactionType, entry LedgerEntry) (*models.WalletTransaction, error)
	Freeze(ctx context.Context, entry LedgerEntry) (*models.WalletTransaction, error)
	Debit(ctx context.Context, entry LedgerEntry) (*models.WalletTransaction, error)
	Unfreeze(ctx context.Context, entry LedgerEntry) (*models.WalletTransaction, error)
}
