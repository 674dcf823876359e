package inmemory

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type walletRepository struct {
	store *Store
}

func NewWalletRepository(store *Store) contracts.WalletRepository {
	return &walletRepository{store: store}
}

func (r *walletRepository) FindOrCreateByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	wallet, ok := r.store.wallets[userID]
	if !ok {
		now := time.Now()
		wallet = models.Wallet{
			ID:            uuid.NewString(),
			UserID:        userID,
			Balance:       decimal.Zero,
			FrozenBalance: decimal.Zero,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		r.store.wallets[userID] = wallet
	}
	return &wallet, nil
}

// FindOrCreateByUserIDForUpdate relies on the store lock held by the
// surrounding transaction.
func (r *walletRepository) FindOrCreateByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	return r.FindOrCreateByUserID(ctx, userID)
}

func (r *walletRepository) UpdateBalances(ctx context.Context, wallet *models.Wallet) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	stored, ok := r.store.wallets[wallet.UserID]
	if !ok {
		return nil
	}
	stored.Balance = wallet.Balance
	stored.FrozenBalance = wallet.FrozenBalance
	stored.UpdatedAt = time.Now()
	r.store.wallets[wallet.UserID] = stored
	wallet.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *walletRepository) InsertTransaction(ctx context.Context, transaction *models.WalletTransaction) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	transaction.CreatedAt = time.Now()
	r.store.walletTransactions = append(r.store.walletTransactions, *transaction)
	return nil
}

func (r *walletRepository) FindTransactionsByWalletID(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var matched []models.WalletTransaction
	for i := len(r.store.walletTransactions) - 1; i >= 0; i-- {
		if r.store.walletTransactions[i].WalletID == walletID {
			matched = append(matched, r.store.walletTransactions[i])
		}
	}
	start, end := page(len(matched), limit, offset)
	return matched[start:end], nil
}

func (r *walletRepository) FindAllTransactions(ctx context.Context, limit, offset int) ([]models.WalletTransaction, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	all := make([]models.WalletTransaction, 0, len(r.store.walletTransactions))
	for i := len(r.store.walletTransactions) - 1; i >= 0; i-- {
		all = append(all, r.store.walletTransactions[i])
	}
	start, end := page(len(all), limit, offset)
	return all[start:end], nil
}
