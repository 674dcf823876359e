package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *models.MedicalRecord) error
	FindByID(ctx context.Context, recordID string) (*models.MedicalRecord, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.MedicalRecord, error)
	Update(ctx context.Context, record *models.MedicalRecord) error
}

// MedicalRecordUsecase guards the medical history. Only the consultation's
// doctor writes, patients read their own history, and doctors read the
// history of patients they have consulted.
type MedicalRecordUsecase interface {
	Create(ctx context.Context, identity models.Identity, request *requests.CreateMedicalRecord) (*models.MedicalRecord, error)
	Update(ctx context.Context, identity models.Identity, recordID string, request *requests.UpdateMedicalRecord) (*models.MedicalRecord, error)
	Get(ctx context.Context, identity models.Identity, recordID string) (*models.MedicalRecord, error)
	ListByPatient(ctx context.Context, identity models.Identity, patientID string) ([]models.MedicalRecord, error)
	// ListMine returns a patient's own history or the records a doctor wrote.
	ListMine(ctx context.Context, identity models.Identity) ([]models.MedicalRecord, error)
}
