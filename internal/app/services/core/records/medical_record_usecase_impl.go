package records

import (
	"context"
	"fmt"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type medicalRecordUsecase struct {
	RecordRepository       contracts.MedicalRecordRepository
	ConsultationRepository contracts.ConsultationRepository
	ConsultationUsecase    contracts.ConsultationUsecase
	Notifier               contracts.Notifier
	Log                    *zap.Logger
}

func NewMedicalRecordUsecase(
	recordRepository contracts.MedicalRecordRepository,
	consultationRepository contracts.ConsultationRepository,
	consultationUsecase contracts.ConsultationUsecase,
	notifier contracts.Notifier,
	logger *zap.Logger,
) contracts.MedicalRecordUsecase {
	return &medicalRecordUsecase{
		RecordRepository:       recordRepository,
		ConsultationRepository: consultationRepository,
		ConsultationUsecase:    consultationUsecase,
		Notifier:               notifier,
		Log:                    logger,
	}
}

func (uc *medicalRecordUsecase) Create(ctx context.Context, identity models.Identity, request *requests.CreateMedicalRecord) (*models.MedicalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, request.ConsultationID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
	)

	consultation, role, err := uc.ConsultationUsecase.Authorize(ctx, identity, request.ConsultationID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleDoctor {
		return nil, exceptions.ErrMedicalRecordAccessDenied(identity.UserID, role.String(), consultation.PatientID)
	}

	record := &models.MedicalRecord{
		ID:              uuid.NewString(),
		PatientID:       consultation.PatientID,
		DoctorID:        consultation.DoctorID,
		ConsultationID:  consultation.ID,
		Diagnosis:       request.Diagnosis,
		Symptoms:        request.Symptoms,
		Treatment:       request.Treatment,
		Recommendations: request.Recommendations,
		Notes:           request.Notes,
	}
	err = uc.RecordRepository.Create(ctx, record)
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.Create error calling RecordRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	doctorName := identity.DisplayName
	if doctorName == "" {
		doctorName = constvars.ConsultationDefaultDoctorName
	}
	uc.Notifier.Notify(ctx, record.PatientID, constvars.NotificationTitleMedicalRecordAdded,
		fmt.Sprintf(constvars.NotificationMessageMedicalRecordAddedFormat, doctorName))

	utils.LogBusinessEvent(uc.Log, "medical_record_created", requestID,
		zap.String(constvars.LoggingRecordIDKey, record.ID),
		zap.String(constvars.LoggingConsultationIDKey, record.ConsultationID),
	)
	return record, nil
}

func (uc *medicalRecordUsecase) Update(ctx context.Context, identity models.Identity, recordID string, request *requests.UpdateMedicalRecord) (*models.MedicalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRecordIDKey, recordID),
	)

	record, err := uc.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if identity.Role != models.RoleDoctor || identity.UserID != record.DoctorID {
		return nil, exceptions.ErrMedicalRecordAccessDenied(identity.UserID, identity.Role.String(), record.PatientID)
	}

	applyText(&record.Diagnosis, request.Diagnosis)
	applyText(&record.Symptoms, request.Symptoms)
	applyText(&record.Treatment, request.Treatment)
	applyText(&record.Recommendations, request.Recommendations)
	applyText(&record.Notes, request.Notes)

	err = uc.RecordRepository.Update(ctx, record)
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.Update error calling RecordRepository.Update",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return record, nil
}

func (uc *medicalRecordUsecase) Get(ctx context.Context, identity models.Identity, recordID string) (*models.MedicalRecord, error) {
	record, err := uc.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.DoctorID == identity.UserID && identity.Role == models.RoleDoctor {
		return record, nil
	}
	if err := uc.checkPatientAccess(ctx, identity, record.PatientID); err != nil {
		return nil, err
	}
	return record, nil
}

func (uc *medicalRecordUsecase) ListByPatient(ctx context.Context, identity models.Identity, patientID string) ([]models.MedicalRecord, error) {
	uc.Log.Info("medicalRecordUsecase.ListByPatient called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
	)

	if err := uc.checkPatientAccess(ctx, identity, patientID); err != nil {
		return nil, err
	}
	return uc.RecordRepository.FindByPatientID(ctx, patientID)
}

func (uc *medicalRecordUsecase) ListMine(ctx context.Context, identity models.Identity) ([]models.MedicalRecord, error) {
	switch identity.Role {
	case models.RolePatient:
		return uc.RecordRepository.FindByPatientID(ctx, identity.UserID)
	case models.RoleDoctor:
		return uc.RecordRepository.FindByDoctorID(ctx, identity.UserID)
	default:
		return []models.MedicalRecord{}, nil
	}
}

// checkPatientAccess lets patients see themselves, doctors see patients they
// have consulted, and admins see everyone.
func (uc *medicalRecordUsecase) checkPatientAccess(ctx context.Context, identity models.Identity, patientID string) error {
	switch identity.Role {
	case models.RoleAdmin:
		return nil
	case models.RolePatient:
		if identity.UserID == patientID {
			return nil
		}
	case models.RoleDoctor:
		count, err := uc.ConsultationRepository.CountByDoctorAndPatient(ctx, identity.UserID, patientID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	}
	return exceptions.ErrMedicalRecordAccessDenied(identity.UserID, identity.Role.String(), patientID)
}

func (uc *medicalRecordUsecase) findRecord(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	record, err := uc.RecordRepository.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrMedicalRecordNotFound(recordID)
	}
	return record, nil
}

func applyText(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
