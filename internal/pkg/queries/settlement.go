package queries

const (
	InsertConsultationSettlement = `
		INSERT INTO consultation_settlements (
			id,
			consultation_id,
			patient_id,
			doctor_id,
			points_cost,
			commission,
			doctor_income
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	GetConsultationSettlementByConsultationID = `
		SELECT
			id,
			consultation_id,
			patient_id,
			doctor_id,
			points_cost,
			commission,
			doctor_income,
			created_at
		FROM consultation_settlements
		WHERE consultation_id = $1
	`
)
