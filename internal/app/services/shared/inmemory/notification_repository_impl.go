package inmemory

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"
)

type notificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) contracts.NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	notification.CreatedAt = time.Now()
	r.store.notifications[notification.ID] = *notification
	r.store.notificationOrder = append(r.store.notificationOrder, notification.ID)
	return nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var matched []models.Notification
	for i := len(r.store.notificationOrder) - 1; i >= 0; i-- {
		notification := r.store.notifications[r.store.notificationOrder[i]]
		if notification.UserID != userID || (unreadOnly && notification.IsRead) {
			continue
		}
		matched = append(matched, notification)
	}
	start, end := page(len(matched), limit, offset)
	return matched[start:end], nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID, userID string) (bool, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	notification, ok := r.store.notifications[notificationID]
	if !ok || notification.UserID != userID {
		return false, nil
	}
	notification.IsRead = true
	r.store.notifications[notificationID] = notification
	return true, nil
}
