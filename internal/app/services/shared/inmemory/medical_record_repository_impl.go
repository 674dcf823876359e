package inmemory

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"
)

type medicalRecordRepository struct {
	store *Store
}

func NewMedicalRecordRepository(store *Store) contracts.MedicalRecordRepository {
	return &medicalRecordRepository{store: store}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.store.medicalRecords[record.ID] = *record
	r.store.medicalRecordOrder = append(r.store.medicalRecordOrder, record.ID)
	return nil
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	record, ok := r.store.medicalRecords[recordID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	return r.newestFirst(ctx, func(record models.MedicalRecord) bool {
		return record.PatientID == patientID
	}), nil
}

func (r *medicalRecordRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.MedicalRecord, error) {
	return r.newestFirst(ctx, func(record models.MedicalRecord) bool {
		return record.DoctorID == doctorID
	}), nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *models.MedicalRecord) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	if _, ok := r.store.medicalRecords[record.ID]; !ok {
		return nil
	}
	record.UpdatedAt = time.Now()
	r.store.medicalRecords[record.ID] = *record
	return nil
}

func (r *medicalRecordRepository) newestFirst(ctx context.Context, match func(models.MedicalRecord) bool) []models.MedicalRecord {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var records []models.MedicalRecord
	for i := len(r.store.medicalRecordOrder) - 1; i >= 0; i-- {
		record := r.store.medicalRecords[r.store.medicalRecordOrder[i]]
		if match(record) {
			records = append(records, record)
		}
	}
	return records
}
