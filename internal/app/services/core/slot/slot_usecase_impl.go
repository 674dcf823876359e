package slot

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type slotUsecase struct {
	SlotRepository         contracts.SlotRepository
	ConsultationRepository contracts.ConsultationRepository
	Transactor             contracts.Transactor
	Metrics                *metrics.Collector
	Log                    *zap.Logger
}

func NewSlotUsecase(
	slotRepository contracts.SlotRepository,
	consultationRepository contracts.ConsultationRepository,
	transactor contracts.Transactor,
	collector *metrics.Collector,
	logger *zap.Logger,
) contracts.SlotUsecase {
	return &slotUsecase{
		SlotRepository:         slotRepository,
		ConsultationRepository: consultationRepository,
		Transactor:             transactor,
		Metrics:                collector,
		Log:                    logger,
	}
}

func (uc *slotUsecase) Publish(ctx context.Context, doctorID string, request *requests.PublishSlot) (*models.ScheduleSlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Time("start_time", request.StartTime),
		zap.Time("end_time", request.EndTime),
	)

	if !request.StartTime.Before(request.EndTime) {
		return nil, exceptions.ErrSlotInvalidRange(request.StartTime.Format(time.RFC3339), request.EndTime.Format(time.RFC3339))
	}

	slot := &models.ScheduleSlot{
		ID:        uuid.NewString(),
		DoctorID:  doctorID,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
	}

	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.SlotRepository.LockDoctorSchedule(txCtx, doctorID); err != nil {
			return err
		}

		overlapping, err := uc.SlotRepository.FindOverlapping(txCtx, doctorID, request.StartTime, request.EndTime)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return exceptions.ErrSlotOverlap(doctorID, request.StartTime.Format(time.RFC3339), request.EndTime.Format(time.RFC3339))
		}

		return uc.SlotRepository.Create(txCtx, slot)
	})
	if err != nil {
		uc.Log.Error("slotUsecase.Publish error creating slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("slotUsecase.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slot.ID),
	)
	return slot, nil
}

// Reserve is a single conditional write, so concurrent callers on one slot
// see exactly one success.
func (uc *slotUsecase) Reserve(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.Reserve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	slot, err := uc.SlotRepository.Reserve(ctx, slotID)
	if err != nil {
		uc.Metrics.SlotReservationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if slot != nil {
		uc.Metrics.SlotReservationsTotal.WithLabelValues("reserved").Inc()
		return slot, nil
	}

	uc.Metrics.SlotReservationsTotal.WithLabelValues("unavailable").Inc()
	existing, err := uc.SlotRepository.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrSlotNotFound(slotID)
	}
	return nil, exceptions.ErrSlotUnavailable(slotID)
}

func (uc *slotUsecase) Release(ctx context.Context, slotID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.Release called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	return uc.SlotRepository.Release(ctx, slotID)
}

func (uc *slotUsecase) Delete(ctx context.Context, identity models.Identity, slotID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
	)

	return uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		slot, err := uc.SlotRepository.FindByID(txCtx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return exceptions.ErrSlotNotFound(slotID)
		}

		switch identity.Role {
		case models.RoleAdmin:
		case models.RoleDoctor:
			if slot.DoctorID != identity.UserID {
				return exceptions.ErrSlotNotOwned(slotID, identity.UserID)
			}
		case models.RolePatient:
			return exceptions.ErrRoleNotAllowed(nil, identity.Role.String())
		default:
			return exceptions.ErrUnknownRole(nil, identity.Role.String())
		}

		if slot.IsReserved {
			return exceptions.ErrSlotInUse(slotID)
		}
		referenced, err := uc.ConsultationRepository.CountBySlotID(txCtx, slotID)
		if err != nil {
			return err
		}
		if referenced > 0 {
			return exceptions.ErrSlotInUse(slotID)
		}

		return uc.SlotRepository.Delete(txCtx, slotID)
	})
}

func (uc *slotUsecase) GetByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	slot, err := uc.SlotRepository.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrSlotNotFound(slotID)
	}
	return slot, nil
}

func (uc *slotUsecase) ListByDoctor(ctx context.Context, doctorID string, availableOnly bool) ([]models.ScheduleSlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.ListByDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Bool("available_only", availableOnly),
	)

	return uc.SlotRepository.FindByDoctorID(ctx, doctorID, availableOnly)
}
