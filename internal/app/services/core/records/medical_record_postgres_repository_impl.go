package records

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
)

type medicalRecordPostgresRepository struct {
	DB *sql.DB
}

func NewMedicalRecordPostgresRepository(db *sql.DB) contracts.MedicalRecordRepository {
	return &medicalRecordPostgresRepository{
		DB: db,
	}
}

func (repo *medicalRecordPostgresRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertMedicalRecord,
		record.ID,
		record.PatientID,
		record.DoctorID,
		record.ConsultationID,
		record.Diagnosis,
		record.Symptoms,
		record.Treatment,
		record.Recommendations,
		record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *medicalRecordPostgresRepository) FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	record, err := scanMedicalRecord(executor.QueryRowContext(ctx, queries.GetMedicalRecordByID, recordID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return record, nil
}

func (repo *medicalRecordPostgresRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	return repo.findMany(ctx, queries.GetMedicalRecordsByPatientID, patientID)
}

func (repo *medicalRecordPostgresRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.MedicalRecord, error) {
	return repo.findMany(ctx, queries.GetMedicalRecordsByDoctorID, doctorID)
}

func (repo *medicalRecordPostgresRepository) Update(ctx context.Context, record *models.MedicalRecord) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.UpdateMedicalRecord,
		record.ID,
		record.Diagnosis,
		record.Symptoms,
		record.Treatment,
		record.Recommendations,
		record.Notes,
	).Scan(&record.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *medicalRecordPostgresRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.MedicalRecord, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var records []models.MedicalRecord
	for rows.Next() {
		record, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMedicalRecord(row rowScanner) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := row.Scan(
		&record.ID,
		&record.PatientID,
		&record.DoctorID,
		&record.ConsultationID,
		&record.Diagnosis,
		&record.Symptoms,
		&record.Treatment,
		&record.Recommendations,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
