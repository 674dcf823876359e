package consultations

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
	"time"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type consultationPostgresRepository struct {
	DB *sql.DB
}

func NewConsultationPostgresRepository(db *sql.DB) contracts.ConsultationRepository {
	return &consultationPostgresRepository{
		DB: db,
	}
}

func (repo *consultationPostgresRepository) Create(ctx context.Context, consultation *models.Consultation) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertConsultation,
		consultation.ID,
		consultation.PatientID,
		consultation.DoctorID,
		consultation.SlotID,
		consultation.Status,
		consultation.RoomID,
		consultation.PointsCost,
		consultation.PointsFrozen,
	).Scan(&consultation.CreatedAt, &consultation.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *consultationPostgresRepository) FindByID(ctx context.Context, consultationID string) (*models.Consultation, error) {
	return repo.findOne(ctx, queries.GetConsultationByID, consultationID)
}

func (repo *consultationPostgresRepository) FindByIDForUpdate(ctx context.Context, consultationID string) (*models.Consultation, error) {
	return repo.findOne(ctx, queries.GetConsultationByIDForUpdate, consultationID)
}

func (repo *consultationPostgresRepository) Update(ctx context.Context, consultation *models.Consultation) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.UpdateConsultation,
		consultation.ID,
		consultation.Status,
		consultation.PointsFrozen,
		consultation.CancellationReason,
		consultation.StartedAt,
		consultation.EndedAt,
	).Scan(&consultation.UpdatedAt)
	if err == sql.ErrNoRows {
		return exceptions.ErrConsultationNotFound(consultation.ID)
	} else if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *consultationPostgresRepository) FindByPatientID(ctx context.Context, patientID string, limit, offset int) ([]models.Consultation, error) {
	return repo.findMany(ctx, queries.GetConsultationsByPatientID, patientID, limit, offset)
}

func (repo *consultationPostgresRepository) FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Consultation, error) {
	return repo.findMany(ctx, queries.GetConsultationsByDoctorID, doctorID, limit, offset)
}

func (repo *consultationPostgresRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Consultation, error) {
	return repo.findMany(ctx, queries.GetAllConsultations, limit, offset)
}

func (repo *consultationPostgresRepository) CountBySlotID(ctx context.Context, slotID string) (int, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	var count int
	err := executor.QueryRowContext(ctx, queries.CountConsultationsBySlotID, slotID).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *consultationPostgresRepository) CountByDoctorAndPatient(ctx context.Context, doctorID, patientID string) (int, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	var count int
	err := executor.QueryRowContext(ctx, queries.CountConsultationsByDoctorAndPatient, doctorID, patientID).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *consultationPostgresRepository) FindExpired(ctx context.Context, cutoff time.Time) ([]models.Consultation, error) {
	return repo.findMany(ctx, queries.GetExpiredConsultations, cutoff)
}

func (repo *consultationPostgresRepository) findOne(ctx context.Context, query, consultationID string) (*models.Consultation, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	consultation, err := scanConsultation(executor.QueryRowContext(ctx, query, consultationID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return consultation, nil
}

func (repo *consultationPostgresRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.Consultation, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var consultations []models.Consultation
	for rows.Next() {
		consultation, err := scanConsultation(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		consultations = append(consultations, *consultation)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return consultations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*models.Consultation, error) {
	var consultation models.Consultation
	err := row.Scan(
		&consultation.ID,
		&consultation.PatientID,
		&consultation.DoctorID,
		&consultation.SlotID,
		&consultation.Status,
		&consultation.RoomID,
		&consultation.PointsCost,
		&consultation.PointsFrozen,
		&consultation.CancellationReason,
		&consultation.StartedAt,
		&consultation.EndedAt,
		&consultation.CreatedAt,
		&consultation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &consultation, nil
}

type settlementPostgresRepository struct {
	DB *sql.DB
}

func NewSettlementPostgresRepository(db *sql.DB) contracts.SettlementRepository {
	return &settlementPostgresRepository{
		DB: db,
	}
}

func (repo *settlementPostgresRepository) Create(ctx context.Context, settlement *models.ConsultationSettlement) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertConsultationSettlement,
		settlement.ID,
		settlement.ConsultationID,
		settlement.PatientID,
		settlement.DoctorID,
		settlement.PointsCost,
		settlement.Commission,
		settlement.DoctorIncome,
	).Scan(&settlement.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return exceptions.ErrSettlementAlreadyRecorded(settlement.ConsultationID)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *settlementPostgresRepository) FindByConsultationID(ctx context.Context, consultationID string) (*models.ConsultationSettlement, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	var settlement models.ConsultationSettlement
	err := executor.QueryRowContext(ctx, queries.GetConsultationSettlementByConsultationID, consultationID).Scan(
		&settlement.ID,
		&settlement.ConsultationID,
		&settlement.PatientID,
		&settlement.DoctorID,
		&settlement.PointsCost,
		&settlement.Commission,
		&settlement.DoctorIncome,
		&settlement.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &settlement, nil
}
