package notifications

import (
	"context"
	"errors"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, queueName string, payload interface{}) error {
	args := m.Called(ctx, queueName, payload)
	return args.Error(0)
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{RabbitMQ: config.AppRabbitMQ{NotificationQueue: "notifications"}}
}

func TestNotificationUsecase_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("Notification is stored and published", func(t *testing.T) {
		repo := inmemory.NewNotificationRepository(inmemory.NewStore())
		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, "notifications", mock.Anything).Return(nil)
		uc := NewNotificationUsecase(repo, publisher, testConfig(), metrics.NewNopCollector(), zap.NewNop())

		uc.Notify(ctx, "user-1", "Hello", "World")

		stored, err := uc.List(ctx, "user-1", false, &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Hello", stored[0].Title)
		assert.False(t, stored[0].IsRead)
		publisher.AssertExpectations(t)
	})

	t.Run("Publish failure keeps the stored notification", func(t *testing.T) {
		repo := inmemory.NewNotificationRepository(inmemory.NewStore())
		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
		uc := NewNotificationUsecase(repo, publisher, testConfig(), metrics.NewNopCollector(), zap.NewNop())

		uc.Notify(ctx, "user-1", "Hello", "World")

		stored, err := uc.List(ctx, "user-1", false, &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("Without a publisher only storage is used", func(t *testing.T) {
		repo := inmemory.NewNotificationRepository(inmemory.NewStore())
		uc := NewNotificationUsecase(repo, nil, testConfig(), metrics.NewNopCollector(), zap.NewNop())

		uc.Notify(ctx, "user-1", "Hello", "World")

		stored, err := uc.List(ctx, "user-1", false, &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})
}

func TestNotificationUsecase_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewNotificationRepository(inmemory.NewStore())
	uc := NewNotificationUsecase(repo, nil, testConfig(), metrics.NewNopCollector(), zap.NewNop())

	uc.Notify(ctx, "user-1", "First", "one")
	uc.Notify(ctx, "user-1", "Second", "two")

	all, err := uc.List(ctx, "user-1", false, &requests.Pagination{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)

	t.Run("Owner marks a notification read", func(t *testing.T) {
		require.NoError(t, uc.MarkAsRead(ctx, all[0].ID, "user-1"))

		unread, err := uc.List(ctx, "user-1", true, &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, all[1].ID, unread[0].ID)
	})

	t.Run("Other users cannot mark it", func(t *testing.T) {
		err := uc.MarkAsRead(ctx, all[1].ID, "user-2")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})

	t.Run("Unknown notification is not found", func(t *testing.T) {
		err := uc.MarkAsRead(ctx, "missing", "user-1")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}
