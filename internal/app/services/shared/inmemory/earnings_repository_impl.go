package inmemory

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"

	"github.com/shopspring/decimal"
)

type earningsRepository struct {
	store *Store
}

func NewEarningsRepository(store *Store) contracts.EarningsRepository {
	return &earningsRepository{store: store}
}

func (r *earningsRepository) FindOrCreateByDoctorID(ctx context.Context, doctorID string) (*models.DoctorEarnings, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	earnings, ok := r.store.earnings[doctorID]
	if !ok {
		now := time.Now()
		earnings = models.DoctorEarnings{
			DoctorID:         doctorID,
			TotalEarned:      decimal.Zero,
			AvailableBalance: decimal.Zero,
			TotalWithdrawn:   decimal.Zero,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		r.store.earnings[doctorID] = earnings
	}
	return &earnings, nil
}

func (r *earningsRepository) FindOrCreateByDoctorIDForUpdate(ctx context.Context, doctorID string) (*models.DoctorEarnings, error) {
	return r.FindOrCreateByDoctorID(ctx, doctorID)
}

func (r *earningsRepository) Update(ctx context.Context, earnings *models.DoctorEarnings) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	earnings.UpdatedAt = time.Now()
	r.store.earnings[earnings.DoctorID] = *earnings
	return nil
}

type withdrawalRepository struct {
	store *Store
}

func NewWithdrawalRepository(store *Store) contracts.WithdrawalRepository {
	return &withdrawalRepository{store: store}
}

func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	now := time.Now()
	withdrawal.CreatedAt = now
	withdrawal.UpdatedAt = now
	r.store.withdrawals[withdrawal.ID] = *withdrawal
	r.store.withdrawalOrder = append(r.store.withdrawalOrder, withdrawal.ID)
	return nil
}

func (r *withdrawalRepository) FindByID(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	withdrawal, ok := r.store.withdrawals[withdrawalID]
	if !ok {
		return nil, nil
	}
	return &withdrawal, nil
}

func (r *withdrawalRepository) FindByIDForUpdate(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	return r.FindByID(ctx, withdrawalID)
}

func (r *withdrawalRepository) Update(ctx context.Context, withdrawal *models.Withdrawal) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	if _, ok := r.store.withdrawals[withdrawal.ID]; !ok {
		return nil
	}
	withdrawal.UpdatedAt = time.Now()
	r.store.withdrawals[withdrawal.ID] = *withdrawal
	return nil
}

func (r *withdrawalRepository) FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Withdrawal, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var matched []models.Withdrawal
	for i := len(r.store.withdrawalOrder) - 1; i >= 0; i-- {
		withdrawal := r.store.withdrawals[r.store.withdrawalOrder[i]]
		if withdrawal.DoctorID == doctorID {
			matched = append(matched, withdrawal)
		}
	}
	start, end := page(len(matched), limit, offset)
	return matched[start:end], nil
}
