package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/dto/responses"
	"time"
)

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *models.Consultation) error
	FindByID(ctx context.Context, consultationID string) (*models.Consultation, error)
	FindByIDForUpdate(ctx context.Context, consultationID string) (*models.Consultation, error)
	Update(ctx context.Context, consultation *models.Consultation) error
	FindByPatientID(ctx context.Context, patientID string, limit, offset int) ([]models.Consultation, error)
	FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Consultation, error)
	FindAll(ctx context.Context, limit, offset int) ([]models.Consultation, error)
	CountBySlotID(ctx context.Context, slotID string) (int, error)
	CountByDoctorAndPatient(ctx context.Context, doctorID, patientID string) (int, error)
	// FindExpired returns CREATED consultations whose slot ended before cutoff.
	FindExpired(ctx context.Context, cutoff time.Time) ([]models.Consultation, error)
}

type SettlementRepository interface {
	// Create fails with exceptions.CodeSettlementRecorded when the
	// consultation already has a settlement.
	Create(ctx context.Context, settlement *models.ConsultationSettlement) error
	FindByConsultationID(ctx context.Context, consultationID string) (*models.ConsultationSettlement, error)
}

type ConsultationUsecase interface {
	Book(ctx context.Context, patientID string, request *requests.BookConsultation) (*models.Consultation, error)
	Start(ctx context.Context, consultationID string) (*models.Consultation, error)
	Complete(ctx context.Context, consultationID string) (*models.Consultation, error)
	Cancel(ctx context.Context, consultationID, reason string) (*models.Consultation, error)

	// Authorize loads the consultation and resolves how identity takes part in it.
	Authorize(ctx context.Context, identity models.Identity, consultationID string) (*models.Consultation, models.Role, error)
	Get(ctx context.Context, identity models.Identity, consultationID string) (*responses.ConsultationDetail, error)
	History(ctx context.Context, identity models.Identity, pagination *requests.Pagination) ([]responses.ConsultationDetail, error)

	AdminCreate(ctx context.Context, request *requests.AdminCreateConsultation) (*models.Consultation, error)
	AdminUpdateStatus(ctx context.Context, consultationID string, request *requests.AdminUpdateConsultationStatus) (*models.Consultation, error)

	// CancelExpired cancels CREATED consultations whose slot ended before cutoff
	// and reports how many were cancelled.
	CancelExpired(ctx context.Context, cutoff time.Time) (int, error)
}
