package queries

const (
	EnsureDoctorEarningsExists = `
		INSERT INTO doctor_earnings (doctor_id, total_earned, available_balance, total_withdrawn)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (doctor_id) DO NOTHING
	`

	GetDoctorEarningsByDoctorID = `
		SELECT
			doctor_id,
			total_earned,
			available_balance,
			total_withdrawn,
			created_at,
			updated_at
		FROM doctor_earnings
		WHERE doctor_id = $1
	`

	GetDoctorEarningsByDoctorIDForUpdate = GetDoctorEarningsByDoctorID + ` FOR UPDATE`

	UpdateDoctorEarnings = `
		UPDATE doctor_earnings
		SET
			total_earned = $2,
			available_balance = $3,
			total_withdrawn = $4,
			updated_at = NOW()
		WHERE doctor_id = $1
		RETURNING updated_at
	`
)
