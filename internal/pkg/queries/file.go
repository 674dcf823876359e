package queries

const (
	InsertConsultationFile = `
		INSERT INTO consultation_files (
			id,
			consultation_id,
			object_name,
			file_name,
			file_type,
			size,
			description,
			uploaded_by_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING uploaded_at
	`

	GetConsultationFileByID = `
		SELECT
			id,
			consultation_id,
			object_name,
			file_name,
			file_type,
			size,
			description,
			uploaded_by_id,
			uploaded_at
		FROM consultation_files
		WHERE id = $1
	`

	GetConsultationFilesByConsultationID = `
		SELECT
			id,
			consultation_id,
			object_name,
			file_name,
			file_type,
			size,
			description,
			uploaded_by_id,
			uploaded_at
		FROM consultation_files
		WHERE consultation_id = $1
		ORDER BY uploaded_at ASC
	`
)
