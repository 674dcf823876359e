package queries

const (
	InsertMedicalRecord = `
		INSERT INTO medical_records (
			id,
			patient_id,
			doctor_id,
			consultation_id,
			diagnosis,
			symptoms,
			treatment,
			recommendations,
			notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	GetMedicalRecordByID = `
		SELECT
			id,
			patient_id,
			doctor_id,
			consultation_id,
			diagnosis,
			symptoms,
			treatment,
			recommendations,
			notes,
			created_at,
			updated_at
		FROM medical_records
		WHERE id = $1
	`

	GetMedicalRecordsByPatientID = `
		SELECT
			id,
			patient_id,
			doctor_id,
			consultation_id,
			diagnosis,
			symptoms,
			treatment,
			recommendations,
			notes,
			created_at,
			updated_at
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	GetMedicalRecordsByDoctorID = `
		SELECT
			id,
			patient_id,
			doctor_id,
			consultation_id,
			diagnosis,
			symptoms,
			treatment,
			recommendations,
			notes,
			created_at,
			updated_at
		FROM medical_records
		WHERE doctor_id = $1
		ORDER BY created_at DESC
	`

	UpdateMedicalRecord = `
		UPDATE medical_records
		SET
			diagnosis = $2,
			symptoms = $3,
			treatment = $4,
			recommendations = $5,
			notes = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
)
