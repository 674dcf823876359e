package withdrawals

import (
	"context"
	"sync"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu         sync.Mutex
	recipients []string
}

func (n *recordingNotifier) Notify(ctx context.Context, userID, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recipients = append(n.recipients, userID)
}

type fixture struct {
	ctx      context.Context
	usecase  contracts.WithdrawalUsecase
	earnings contracts.EarningsRepository
	notifier *recordingNotifier
}

func newFixture(t *testing.T, available int64) *fixture {
	t.Helper()

	store := inmemory.NewStore()
	profiles := inmemory.NewProfileRepository(store)
	f := &fixture{
		ctx:      context.Background(),
		earnings: inmemory.NewEarningsRepository(store),
		notifier: &recordingNotifier{},
	}
	cfg := &config.InternalConfig{
		Withdrawal: config.AppWithdrawal{MinimumAmount: decimal.NewFromInt(50)},
	}
	f.usecase = NewWithdrawalUsecase(inmemory.NewWithdrawalRepository(store), f.earnings, profiles, f.notifier, store, cfg, zap.NewNop())

	require.NoError(t, profiles.Create(f.ctx, &models.UserProfile{ID: "doctor-1", Role: models.RoleDoctor, DisplayName: "Doc", IsVerified: true}))
	require.NoError(t, profiles.Create(f.ctx, &models.UserProfile{ID: "admin-1", Role: models.RoleAdmin}))

	earnings, err := f.earnings.FindOrCreateByDoctorID(f.ctx, "doctor-1")
	require.NoError(t, err)
	earnings.TotalEarned = decimal.NewFromInt(available)
	earnings.AvailableBalance = decimal.NewFromInt(available)
	require.NoError(t, f.earnings.Update(f.ctx, earnings))
	return f
}

func (f *fixture) request(t *testing.T, amount int64) *models.Withdrawal {
	t.Helper()
	withdrawal, err := f.usecase.Request(f.ctx, "doctor-1", &requests.RequestWithdrawal{
		Amount:      decimal.NewFromInt(amount),
		BankAccount: "1234567890",
		BankName:    "Bank Central",
	})
	require.NoError(t, err)
	return withdrawal
}

func (f *fixture) available(t *testing.T) decimal.Decimal {
	t.Helper()
	earnings, err := f.usecase.GetEarnings(f.ctx, "doctor-1")
	require.NoError(t, err)
	return earnings.AvailableBalance
}

func TestWithdrawalUsecase_Request(t *testing.T) {
	t.Run("Requesting reserves the amount and tells the admins", func(t *testing.T) {
		f := newFixture(t, 300)

		withdrawal := f.request(t, 100)

		assert.Equal(t, models.WithdrawalStatusPending, withdrawal.Status)
		assert.True(t, f.available(t).Equal(decimal.NewFromInt(200)))
		assert.ElementsMatch(t, []string{"doctor-1", "admin-1"}, f.notifier.recipients)
	})

	t.Run("Amounts below the minimum are rejected", func(t *testing.T) {
		f := newFixture(t, 300)

		_, err := f.usecase.Request(f.ctx, "doctor-1", &requests.RequestWithdrawal{Amount: decimal.NewFromInt(49), BankAccount: "1", BankName: "B"})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeWithdrawalBelowMinimum))
	})

	t.Run("Cannot withdraw more than available", func(t *testing.T) {
		f := newFixture(t, 80)

		_, err := f.usecase.Request(f.ctx, "doctor-1", &requests.RequestWithdrawal{Amount: decimal.NewFromInt(100), BankAccount: "1", BankName: "B"})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInsufficientEarnings))
		assert.True(t, f.available(t).Equal(decimal.NewFromInt(80)))
	})
}

func TestWithdrawalUsecase_Lifecycle(t *testing.T) {
	t.Run("Approve then complete records the payout", func(t *testing.T) {
		f := newFixture(t, 300)
		withdrawal := f.request(t, 100)

		approved, err := f.usecase.Approve(f.ctx, withdrawal.ID)
		require.NoError(t, err)
		assert.NotNil(t, approved.ApprovedAt)

		completed, err := f.usecase.Complete(f.ctx, withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, models.WithdrawalStatusCompleted, completed.Status)

		earnings, err := f.usecase.GetEarnings(f.ctx, "doctor-1")
		require.NoError(t, err)
		assert.True(t, earnings.TotalWithdrawn.Equal(decimal.NewFromInt(100)))
		assert.True(t, earnings.AvailableBalance.Equal(decimal.NewFromInt(200)))
	})

	t.Run("Rejecting refunds the reserved amount", func(t *testing.T) {
		f := newFixture(t, 300)
		withdrawal := f.request(t, 100)

		rejected, err := f.usecase.Reject(f.ctx, withdrawal.ID, &requests.RejectWithdrawal{Reason: "invalid account"})
		require.NoError(t, err)
		assert.Equal(t, "invalid account", *rejected.RejectionReason)
		assert.True(t, f.available(t).Equal(decimal.NewFromInt(300)))
	})

	t.Run("Only the owning doctor cancels", func(t *testing.T) {
		f := newFixture(t, 300)
		withdrawal := f.request(t, 100)

		_, err := f.usecase.Cancel(f.ctx, "doctor-2", withdrawal.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))

		cancelled, err := f.usecase.Cancel(f.ctx, "doctor-1", withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, models.WithdrawalStatusCancelled, cancelled.Status)
		assert.True(t, f.available(t).Equal(decimal.NewFromInt(300)))
	})

	t.Run("Completing a pending withdrawal is rejected", func(t *testing.T) {
		f := newFixture(t, 300)
		withdrawal := f.request(t, 100)

		_, err := f.usecase.Complete(f.ctx, withdrawal.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidTransition))
	})

	t.Run("Approved withdrawals can no longer be cancelled", func(t *testing.T) {
		f := newFixture(t, 300)
		withdrawal := f.request(t, 100)
		_, err := f.usecase.Approve(f.ctx, withdrawal.ID)
		require.NoError(t, err)

		_, err = f.usecase.Cancel(f.ctx, "doctor-1", withdrawal.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidTransition))
		assert.True(t, f.available(t).Equal(decimal.NewFromInt(200)))
	})

	t.Run("History lists the doctor's withdrawals", func(t *testing.T) {
		f := newFixture(t, 300)
		f.request(t, 100)
		f.request(t, 50)

		history, err := f.usecase.History(f.ctx, "doctor-1", &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})
}
