package notifications

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
)

type notificationPostgresRepository struct {
	DB *sql.DB
}

func NewNotificationPostgresRepository(db *sql.DB) contracts.NotificationRepository {
	return &notificationPostgresRepository{
		DB: db,
	}
}

func (repo *notificationPostgresRepository) Create(ctx context.Context, notification *models.Notification) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertNotification,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
	).Scan(&notification.CreatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *notificationPostgresRepository) FindByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetNotificationsByUserID, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var notification models.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Title,
			&notification.Message,
			&notification.Type,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return notifications, nil
}

func (repo *notificationPostgresRepository) MarkAsRead(ctx context.Context, notificationID, userID string) (bool, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	result, err := executor.ExecContext(ctx, queries.MarkNotificationAsRead, notificationID, userID)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected > 0, nil
}
