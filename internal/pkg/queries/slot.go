package queries

const (
	// LockDoctorSchedule serializes slot publication per doctor for the rest
	// of the transaction so the overlap check cannot race.
	LockDoctorSchedule = `SELECT pg_advisory_xact_lock(hashtext($1))`

	InsertScheduleSlot = `
		INSERT INTO schedule_slots (
			id,
			doctor_id,
			start_time,
			end_time,
			is_available,
			is_reserved
		) VALUES ($1, $2, $3, $4, TRUE, FALSE)
		RETURNING created_at, updated_at
	`

	GetScheduleSlotByID = `
		SELECT
			id,
			doctor_id,
			start_time,
			end_time,
			is_available,
			is_reserved,
			created_at,
			updated_at
		FROM schedule_slots
		WHERE id = $1
	`

	GetScheduleSlotsByDoctorID = `
		SELECT
			id,
			doctor_id,
			start_time,
			end_time,
			is_available,
			is_reserved,
			created_at,
			updated_at
		FROM schedule_slots
		WHERE doctor_id = $1
			AND ($2 = FALSE OR (is_available AND NOT is_reserved))
		ORDER BY start_time ASC
	`

	GetOverlappingScheduleSlots = `
		SELECT
			id,
			doctor_id,
			start_time,
			end_time,
			is_available,
			is_reserved,
			created_at,
			updated_at
		FROM schedule_slots
		WHERE doctor_id = $1
			AND start_time < $3
			AND end_time > $2
	`

	ReserveScheduleSlot = `
		UPDATE schedule_slots
		SET
			is_available = FALSE,
			is_reserved = TRUE,
			updated_at = NOW()
		WHERE id = $1
			AND is_available
			AND NOT is_reserved
		RETURNING
			id,
			doctor_id,
			start_time,
			end_time,
			is_available,
			is_reserved,
			created_at,
			updated_at
	`

	ReleaseScheduleSlot = `
		UPDATE schedule_slots
		SET
			is_available = TRUE,
			is_reserved = FALSE,
			updated_at = NOW()
		WHERE id = $1
	`

	DeleteScheduleSlot = `
		DELETE FROM schedule_slots
		WHERE id = $1
	`
)
