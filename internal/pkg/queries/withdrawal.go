package queries

const (
	InsertWithdrawal = `
		INSERT INTO withdrawals (
			id,
			doctor_id,
			amount,
			bank_account,
			bank_name,
			status,
			description
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	GetWithdrawalByID = `
		SELECT
			id,
			doctor_id,
			amount,
			bank_account,
			bank_name,
			status,
			description,
			rejection_reason,
			approved_at,
			completed_at,
			created_at,
			updated_at
		FROM withdrawals
		WHERE id = $1
	`

	GetWithdrawalByIDForUpdate = GetWithdrawalByID + ` FOR UPDATE`

	UpdateWithdrawal = `
		UPDATE withdrawals
		SET
			status = $2,
			rejection_reason = $3,
			approved_at = $4,
			completed_at = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	GetWithdrawalsByDoctorID = `
		SELECT
			id,
			doctor_id,
			amount,
			bank_account,
			bank_name,
			status,
			description,
			rejection_reason,
			approved_at,
			completed_at,
			created_at,
			updated_at
		FROM withdrawals
		WHERE doctor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
)
