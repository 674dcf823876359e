package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	// MarkAsRead reports false when no notification of userID has that id.
	MarkAsRead(ctx context.Context, notificationID, userID string) (bool, error)
}

// Notifier is the fire-and-forget dispatch used by the domain services.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message string)
}

type NotificationUsecase interface {
	Notifier
	List(ctx context.Context, userID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
}

type MessagePublisher interface {
	Publish(ctx context.Context, queueName string, payload interface{}) error
}
