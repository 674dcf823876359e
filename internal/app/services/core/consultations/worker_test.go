package consultations

import (
	"context"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) Acquire(ctx context.Context, key string, ttl time.Duration) (*contracts.Lease, error) {
	args := m.Called(ctx, key, ttl)
	lease, _ := args.Get(0).(*contracts.Lease)
	return lease, args.Error(1)
}

func (m *MockLockerService) Release(ctx context.Context, lease *contracts.Lease) error {
	return m.Called(ctx, lease).Error(0)
}

func (m *MockLockerService) Extend(ctx context.Context, lease *contracts.Lease) error {
	return m.Called(ctx, lease).Error(0)
}

func sweeperConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Consultation: config.AppConsultation{
			CommissionRate:          decimal.RequireFromString("0.20"),
			ExpiryGraceInMinutes:    30,
			SweeperCronSpec:         "@every 1m",
			SweeperLeaderLockTTLSec: 120,
		},
	}
}

func TestWorker_RunOnce(t *testing.T) {
	setup := func(t *testing.T) (*fixture, *models.Consultation) {
		f := newFixture(t)
		f.topUp(t, patientID, 100)
		expired := f.book(t, f.publishSlot(t, time.Now().Add(-2*time.Hour)).ID, 100)
		return f, expired
	}

	statusOf := func(t *testing.T, f *fixture, consultationID string) models.ConsultationStatus {
		consultation, err := f.consultation.FindByID(f.ctx, consultationID)
		require.NoError(t, err)
		return consultation.Status
	}

	t.Run("Leader cancels expired consultations and releases the lock", func(t *testing.T) {
		f, expired := setup(t)
		locker := new(MockLockerService)
		lease := &contracts.Lease{Key: leaderLockKey, Token: "token-1", TTL: 120 * time.Second}
		locker.On("Acquire", mock.Anything, leaderLockKey, 120*time.Second).Return(lease, nil)
		locker.On("Release", mock.Anything, lease).Return(nil)

		worker := NewWorker(zap.NewNop(), sweeperConfig(), locker, f.usecase)
		worker.RunOnce(context.Background())

		assert.Equal(t, models.ConsultationStatusCancelled, statusOf(t, f, expired.ID))
		locker.AssertExpectations(t)
	})

	t.Run("Follower skips the sweep", func(t *testing.T) {
		f, expired := setup(t)
		locker := new(MockLockerService)
		locker.On("Acquire", mock.Anything, leaderLockKey, mock.Anything).Return(nil, nil)

		worker := NewWorker(zap.NewNop(), sweeperConfig(), locker, f.usecase)
		worker.RunOnce(context.Background())

		assert.Equal(t, models.ConsultationStatusCreated, statusOf(t, f, expired.ID))
		locker.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})

	t.Run("Without a locker every tick sweeps", func(t *testing.T) {
		f, expired := setup(t)

		worker := NewWorker(zap.NewNop(), sweeperConfig(), nil, f.usecase)
		worker.RunOnce(context.Background())

		assert.Equal(t, models.ConsultationStatusCancelled, statusOf(t, f, expired.ID))
	})

	t.Run("Grace period keeps recently ended slots", func(t *testing.T) {
		f := newFixture(t)
		f.topUp(t, patientID, 100)
		recent := f.book(t, f.publishSlot(t, time.Now().Add(-40*time.Minute)).ID, 100)

		worker := NewWorker(zap.NewNop(), sweeperConfig(), nil, f.usecase)
		worker.RunOnce(context.Background())

		assert.Equal(t, models.ConsultationStatusCreated, statusOf(t, f, recent.ID))
	})
}

func TestWorker_StartStop(t *testing.T) {
	f := newFixture(t)
	worker := NewWorker(zap.NewNop(), sweeperConfig(), nil, f.usecase)

	worker.Start(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Stop()
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
