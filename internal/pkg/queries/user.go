package queries

const (
	GetUserProfileByID = `
		SELECT
			id,
			role,
			email,
			display_name,
			is_verified,
			created_at,
			updated_at
		FROM users
		WHERE id = $1
	`

	GetUserProfilesByRole = `
		SELECT
			id,
			role,
			email,
			display_name,
			is_verified,
			created_at,
			updated_at
		FROM users
		WHERE role = $1
		ORDER BY created_at ASC
	`

	InsertUserProfile = `
		INSERT INTO users (
			id,
			role,
			email,
			display_name,
			is_verified
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
)
