package notifications

import (
	"context"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"telemed-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	Publisher              contracts.MessagePublisher
	InternalConfig         *config.InternalConfig
	Metrics                *metrics.Collector
	Log                    *zap.Logger
}

// NewNotificationUsecase persists notifications and fans them out to the
// notification queue. A nil publisher keeps notifications in storage only.
func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	publisher contracts.MessagePublisher,
	internalConfig *config.InternalConfig,
	collector *metrics.Collector,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		Publisher:              publisher,
		InternalConfig:         internalConfig,
		Metrics:                collector,
		Log:                    logger,
	}
}

// Notify never fails the caller. Storage and queue errors are logged.
func (uc *notificationUsecase) Notify(ctx context.Context, userID, title, message string) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.Notify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String("title", title),
	)

	notification := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    constvars.NotificationTypePush,
	}
	err := uc.NotificationRepository.Create(ctx, notification)
	if err != nil {
		uc.Metrics.NotificationPublishFailuresTotal.Inc()
		uc.Log.Error("notificationUsecase.Notify error persisting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return
	}

	if uc.Publisher == nil {
		return
	}

	queueName := uc.InternalConfig.RabbitMQ.NotificationQueue
	err = uc.Publisher.Publish(ctx, queueName, notification)
	if err != nil {
		uc.Metrics.NotificationPublishFailuresTotal.Inc()
		uc.Log.Error("notificationUsecase.Notify error publishing notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNotificationIDKey, notification.ID),
			zap.String(constvars.LoggingQueueNameKey, queueName),
			zap.Error(err),
		)
	}
}

func (uc *notificationUsecase) List(ctx context.Context, userID string, unreadOnly bool, pagination *requests.Pagination) ([]models.Notification, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.Bool("unread_only", unreadOnly),
	)

	return uc.NotificationRepository.FindByUserID(ctx, userID, unreadOnly, pagination.Limit, pagination.Offset)
}

func (uc *notificationUsecase) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.MarkAsRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	updated, err := uc.NotificationRepository.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !updated {
		return exceptions.ErrNotificationNotFound(notificationID)
	}
	return nil
}
