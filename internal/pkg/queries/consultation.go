package queries

const (
	InsertConsultation = `
		INSERT INTO consultations (
			id,
			patient_id,
			doctor_id,
			slot_id,
			status,
			room_id,
			points_cost,
			points_frozen
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	GetConsultationByID = `
		SELECT
			id,
			patient_id,
			doctor_id,
			slot_id,
			status,
			room_id,
			points_cost,
			points_frozen,
			cancellation_reason,
			started_at,
			ended_at,
			created_at,
			updated_at
		FROM consultations
		WHERE id = $1
	`

	GetConsultationByIDForUpdate = GetConsultationByID + ` FOR UPDATE`

	UpdateConsultation = `
		UPDATE consultations
		SET
			status = $2,
			points_frozen = $3,
			cancellation_reason = $4,
			started_at = $5,
			ended_at = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	GetConsultationsByPatientID = `
		SELECT
			id,
			patient_id,
			doctor_id,
			slot_id,
			status,
			room_id,
			points_cost,
			points_frozen,
			cancellation_reason,
			started_at,
			ended_at,
			created_at,
			updated_at
		FROM consultations
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	GetConsultationsByDoctorID = `
		SELECT
			id,
			patient_id,
			doctor_id,
			slot_id,
			status,
			room_id,
			points_cost,
			points_frozen,
			cancellation_reason,
			started_at,
			ended_at,
			created_at,
			updated_at
		FROM consultations
		WHERE doctor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	GetAllConsultations = `
		SELECT
			id,
			patient_id,
			doctor_id,
			slot_id,
			status,
			room_id,
			points_cost,
			points_frozen,
			cancellation_reason,
			started_at,
			ended_at,
			created_at,
			updated_at
		FROM consultations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	CountConsultationsBySlotID = `
		SELECT COUNT(1)
		FROM consultations
		WHERE slot_id = $1
	`

	CountConsultationsByDoctorAndPatient = `
		SELECT COUNT(1)
		FROM consultations
		WHERE doctor_id = $1 AND patient_id = $2
	`

	GetExpiredConsultations = `
		SELECT
			c.id,
			c.patient_id,
			c.doctor_id,
			c.slot_id,
			c.status,
			c.room_id,
			c.points_cost,
			c.points_frozen,
			c.cancellation_reason,
			c.started_at,
			c.ended_at,
			c.created_at,
			c.updated_at
		FROM consultations c
		JOIN schedule_slots s ON s.id = c.slot_id
		WHERE c.status = 'CREATED'
			AND s.end_time < $1
		ORDER BY s.end_time ASC
	`
)
