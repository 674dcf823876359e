package queries

const (
	InsertNotification = `
		INSERT INTO notifications (
			id,
			user_id,
			title,
			message,
			notification_type
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	GetNotificationsByUserID = `
		SELECT
			id,
			user_id,
			title,
			message,
			notification_type,
			is_read,
			created_at
		FROM notifications
		WHERE user_id = $1
			AND ($2 = FALSE OR NOT is_read)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	MarkNotificationAsRead = `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1
			AND user_id = $2
	`
)
