package consultations

import (
	"context"
	"fmt"
	"strings"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/dto/responses"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"telemed-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type consultationUsecase struct {
	ConsultationRepository contracts.ConsultationRepository
	SettlementRepository   contracts.SettlementRepository
	SlotRepository         contracts.SlotRepository
	SlotUsecase            contracts.SlotUsecase
	WalletUsecase          contracts.WalletUsecase
	EarningsRepository     contracts.EarningsRepository
	ProfileRepository      contracts.ProfileRepository
	Notifier               contracts.Notifier
	Transactor             contracts.Transactor
	InternalConfig         *config.InternalConfig
	Metrics                *metrics.Collector
	Log                    *zap.Logger
}

// pendingNotification is queued inside a transaction and sent after commit.
type pendingNotification struct {
	userID  string
	title   string
	message string
}

// transitionFunc applies the side effects of a status change to a locked
// consultation. It runs inside the transaction of the change.
type transitionFunc func(ctx context.Context, consultation *models.Consultation) ([]pendingNotification, error)

func NewConsultationUsecase(
	consultationRepository contracts.ConsultationRepository,
	settlementRepository contracts.SettlementRepository,
	slotRepository contracts.SlotRepository,
	slotUsecase contracts.SlotUsecase,
	walletUsecase contracts.WalletUsecase,
	earningsRepository contracts.EarningsRepository,
	profileRepository contracts.ProfileRepository,
	notifier contracts.Notifier,
	transactor contracts.Transactor,
	internalConfig *config.InternalConfig,
	collector *metrics.Collector,
	logger *zap.Logger,
) contracts.ConsultationUsecase {
	return &consultationUsecase{
		ConsultationRepository: consultationRepository,
		SettlementRepository:   settlementRepository,
		SlotRepository:         slotRepository,
		SlotUsecase:            slotUsecase,
		WalletUsecase:          walletUsecase,
		EarningsRepository:     earningsRepository,
		ProfileRepository:      profileRepository,
		Notifier:               notifier,
		Transactor:             transactor,
		InternalConfig:         internalConfig,
		Metrics:                collector,
		Log:                    logger,
	}
}

func (uc *consultationUsecase) Book(ctx context.Context, patientID string, request *requests.BookConsultation) (*models.Consultation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotIDKey, request.SlotID),
		zap.Int64(constvars.LoggingPointsCostKey, request.PointsCost),
	)

	var (
		consultation *models.Consultation
		pending      []pendingNotification
	)
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		patient, doctor, err := uc.resolveParticipants(txCtx, patientID, request.DoctorID)
		if err != nil {
			return err
		}

		consultation, pending, err = uc.book(txCtx, patient, doctor, request.SlotID, request.PointsCost)
		return err
	})
	if err != nil {
		uc.Log.Error("consultationUsecase.Book error booking consultation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, request.SlotID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Metrics.ConsultationsTotal.WithLabelValues(string(models.ConsultationStatusCreated)).Inc()
	utils.LogBusinessEvent(uc.Log, "consultation_booked", requestID,
		zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
		zap.String(constvars.LoggingPatientIDKey, consultation.PatientID),
		zap.String(constvars.LoggingDoctorIDKey, consultation.DoctorID),
	)
	uc.dispatch(ctx, pending)
	return consultation, nil
}

// book reserves the slot, records the consultation and freezes the cost. It
// must run inside a transaction so a failed freeze also undoes the
// reservation.
func (uc *consultationUsecase) book(ctx context.Context, patient, doctor *models.UserProfile, slotID string, pointsCost int64) (*models.Consultation, []pendingNotification, error) {
	slot, err := uc.SlotRepository.FindByID(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	if slot == nil || slot.DoctorID != doctor.ID {
		return nil, nil, exceptions.ErrSlotNotFound(slotID)
	}

	slot, err = uc.SlotUsecase.Reserve(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}

	consultation := &models.Consultation{
		ID:           uuid.NewString(),
		PatientID:    patient.ID,
		DoctorID:     doctor.ID,
		SlotID:       slot.ID,
		Status:       models.ConsultationStatusCreated,
		RoomID:       uuid.NewString(),
		PointsCost:   pointsCost,
		PointsFrozen: true,
	}
	err = uc.ConsultationRepository.Create(ctx, consultation)
	if err != nil {
		return nil, nil, err
	}

	consultationID := consultation.ID
	_, err = uc.WalletUsecase.Freeze(ctx, contracts.LedgerEntry{
		UserID:         patient.ID,
		Amount:         decimal.NewFromInt(pointsCost),
		ConsultationID: &consultationID,
		Description:    fmt.Sprintf(constvars.WalletDescriptionBookingFormat, displayName(doctor, constvars.ConsultationDefaultDoctorName)),
	})
	if err != nil {
		return nil, nil, err
	}

	scheduledAt := slot.StartTime.Format(constvars.ConsultationTimeLayout)
	pending := []pendingNotification{
		{
			userID:  patient.ID,
			title:   constvars.NotificationTitleConsultationBooked,
			message: fmt.Sprintf(constvars.NotificationMessageConsultationBookedFormat, displayName(doctor, constvars.ConsultationDefaultDoctorName), scheduledAt),
		},
		{
			userID:  doctor.ID,
			title:   constvars.NotificationTitleNewConsultation,
			message: fmt.Sprintf(constvars.NotificationMessageNewConsultationFormat, displayName(patient, constvars.ConsultationDefaultPatientName), scheduledAt),
		},
	}
	return consultation, pending, nil
}

func (uc *consultationUsecase) Start(ctx context.Context, consultationID string) (*models.Consultation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.Start called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
	)

	return uc.transition(ctx, consultationID, models.ConsultationStatusActive, func(_ context.Context, consultation *models.Consultation) ([]pendingNotification, error) {
		now := time.Now()
		consultation.StartedAt = &now
		return nil, nil
	})
}

func (uc *consultationUsecase) Complete(ctx context.Context, consultationID string) (*models.Consultation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.Complete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
	)

	return uc.transition(ctx, consultationID, models.ConsultationStatusCompleted, uc.settle)
}

// settle pays out a consultation: the frozen cost leaves the patient, the
// doctor is credited the cost minus commission, earnings grow by the same
// income and a settlement row is written. The settlement row is unique per
// consultation, so a second payout fails the whole transaction.
func (uc *consultationUsecase) settle(ctx context.Context, consultation *models.Consultation) ([]pendingNotification, error) {
	requestID := utils.GetRequestID(ctx)
	cost := decimal.NewFromInt(consultation.PointsCost)
	commission, income := SplitCommission(cost, uc.InternalConfig.Consultation.CommissionRate)
	consultationID := consultation.ID

	_, err := uc.WalletUsecase.Debit(ctx, contracts.LedgerEntry{
		UserID:         consultation.PatientID,
		Amount:         cost,
		ConsultationID: &consultationID,
		Description:    constvars.WalletDescriptionSettlement,
	})
	if err != nil {
		return nil, err
	}

	if income.IsPositive() {
		_, err = uc.WalletUsecase.CreditAs(ctx, models.TransactionTypePurchase, contracts.LedgerEntry{
			UserID:         consultation.DoctorID,
			Amount:         income,
			ConsultationID: &consultationID,
			Description:    fmt.Sprintf(constvars.WalletDescriptionIncomeFormat, commission.StringFixed(2)),
		})
		if err != nil {
			return nil, err
		}
	}

	earnings, err := uc.EarningsRepository.FindOrCreateByDoctorIDForUpdate(ctx, consultation.DoctorID)
	if err != nil {
		return nil, err
	}
	earnings.TotalEarned = earnings.TotalEarned.Add(income)
	earnings.AvailableBalance = earnings.AvailableBalance.Add(income)
	err = uc.EarningsRepository.Update(ctx, earnings)
	if err != nil {
		return nil, err
	}

	err = uc.SettlementRepository.Create(ctx, &models.ConsultationSettlement{
		ID:             uuid.NewString(),
		ConsultationID: consultation.ID,
		PatientID:      consultation.PatientID,
		DoctorID:       consultation.DoctorID,
		PointsCost:     cost,
		Commission:     commission,
		DoctorIncome:   income,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	consultation.EndedAt = &now
	consultation.PointsFrozen = false

	uc.Log.Info("consultationUsecase.settle recorded settlement",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
		zap.String(constvars.LoggingPointsCostKey, cost.StringFixed(2)),
		zap.String(constvars.LoggingCommissionKey, commission.StringFixed(2)),
		zap.String(constvars.LoggingDoctorIncomeKey, income.StringFixed(2)),
	)

	return []pendingNotification{
		{
			userID:  consultation.DoctorID,
			title:   constvars.NotificationTitleConsultationCompleted,
			message: fmt.Sprintf(constvars.NotificationMessageConsultationCompletedFormat, income.StringFixed(2)),
		},
	}, nil
}

func (uc *consultationUsecase) Cancel(ctx context.Context, consultationID, reason string) (*models.Consultation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingReasonKey, reason),
	)

	if reason == "" {
		reason = constvars.ConsultationCancelledNoReason
	}

	return uc.transition(ctx, consultationID, models.ConsultationStatusCancelled, func(txCtx context.Context, consultation *models.Consultation) ([]pendingNotification, error) {
		if consultation.PointsFrozen {
			consultationID := consultation.ID
			_, err := uc.WalletUsecase.Unfreeze(txCtx, contracts.LedgerEntry{
				UserID:         consultation.PatientID,
				Amount:         decimal.NewFromInt(consultation.PointsCost),
				ConsultationID: &consultationID,
				Description:    fmt.Sprintf(constvars.WalletDescriptionRefundFormat, reason),
			})
			if err != nil {
				return nil, err
			}
			consultation.PointsFrozen = false
		}

		slot, err := uc.SlotRepository.FindByID(txCtx, consultation.SlotID)
		if err != nil {
			return nil, err
		}
		err = uc.SlotUsecase.Release(txCtx, consultation.SlotID)
		if err != nil {
			return nil, err
		}

		cancellationReason := reason
		consultation.CancellationReason = &cancellationReason

		scheduledAt := constvars.ResponseUnknown
		if slot != nil {
			scheduledAt = slot.StartTime.Format(constvars.ConsultationTimeLayout)
		}
		message := fmt.Sprintf(constvars.NotificationMessageConsultationCancelledFormat, scheduledAt, reason)
		return []pendingNotification{
			{userID: consultation.PatientID, title: constvars.NotificationTitleConsultationCancelled, message: message},
			{userID: consultation.DoctorID, title: constvars.NotificationTitleConsultationCancelled, message: message},
		}, nil
	})
}

// transition locks the consultation, checks the state machine and applies
// apply together with the status change in one transaction.
func (uc *consultationUsecase) transition(ctx context.Context, consultationID string, next models.ConsultationStatus, apply transitionFunc) (*models.Consultation, error) {
	requestID := utils.GetRequestID(ctx)

	var (
		consultation *models.Consultation
		pending      []pendingNotification
	)
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := uc.ConsultationRepository.FindByIDForUpdate(txCtx, consultationID)
		if err != nil {
			return err
		}
		if current == nil {
			return exceptions.ErrConsultationNotFound(consultationID)
		}
		if !current.Status.CanTransitionTo(next) {
			return exceptions.ErrInvalidTransition(consultationID, string(current.Status), string(next))
		}

		pending, err = apply(txCtx, current)
		if err != nil {
			return err
		}

		current.Status = next
		err = uc.ConsultationRepository.Update(txCtx, current)
		if err != nil {
			return err
		}

		consultation = current
		return nil
	})
	if err != nil {
		uc.Log.Error("consultationUsecase.transition error changing status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.String(constvars.LoggingConsultationStatus, string(next)),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Metrics.ConsultationsTotal.WithLabelValues(string(next)).Inc()
	utils.LogBusinessEvent(uc.Log, "consultation_"+strings.ToLower(string(next)), requestID,
		zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
	)
	uc.dispatch(ctx, pending)
	return consultation, nil
}

func (uc *consultationUsecase) Authorize(ctx context.Context, identity models.Identity, consultationID string) (*models.Consultation, models.Role, error) {
	consultation, err := uc.ConsultationRepository.FindByID(ctx, consultationID)
	if err != nil {
		return nil, "", err
	}
	if consultation == nil {
		return nil, "", exceptions.ErrConsultationNotFound(consultationID)
	}

	role, ok := consultation.ParticipantRole(identity)
	if role == "" {
		return nil, "", exceptions.ErrUnknownRole(nil, identity.Role.String())
	}
	if !ok {
		return nil, "", exceptions.ErrNotParticipant(identity.UserID, consultationID)
	}
	return consultation, role, nil
}

func (uc *consultationUsecase) Get(ctx context.Context, identity models.Identity, consultationID string) (*responses.ConsultationDetail, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.Get called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
	)

	consultation, _, err := uc.Authorize(ctx, identity, consultationID)
	if err != nil {
		return nil, err
	}
	return uc.buildDetail(ctx, consultation)
}

func (uc *consultationUsecase) History(ctx context.Context, identity models.Identity, pagination *requests.Pagination) ([]responses.ConsultationDetail, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.History called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
		zap.String(constvars.LoggingRoleKey, identity.Role.String()),
		zap.Int(constvars.LoggingLimitKey, pagination.Limit),
		zap.Int(constvars.LoggingOffsetKey, pagination.Offset),
	)

	var (
		consultations []models.Consultation
		err           error
	)
	switch identity.Role {
	case models.RoleDoctor:
		consultations, err = uc.ConsultationRepository.FindByDoctorID(ctx, identity.UserID, pagination.Limit, pagination.Offset)
	case models.RolePatient:
		consultations, err = uc.ConsultationRepository.FindByPatientID(ctx, identity.UserID, pagination.Limit, pagination.Offset)
	case models.RoleAdmin:
		consultations, err = uc.ConsultationRepository.FindAll(ctx, pagination.Limit, pagination.Offset)
	default:
		return nil, exceptions.ErrUnknownRole(nil, identity.Role.String())
	}
	if err != nil {
		return nil, err
	}

	details := make([]responses.ConsultationDetail, 0, len(consultations))
	for i := range consultations {
		detail, err := uc.buildDetail(ctx, &consultations[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (uc *consultationUsecase) AdminCreate(ctx context.Context, request *requests.AdminCreateConsultation) (*models.Consultation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.AdminCreate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientUserID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorUserID),
		zap.Int64(constvars.LoggingPointsCostKey, request.PointsCost),
		zap.Bool("auto_top_up", request.AutoTopUp),
	)

	var (
		consultation *models.Consultation
		pending      []pendingNotification
	)
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		patient, doctor, err := uc.resolveParticipants(txCtx, request.PatientUserID, request.DoctorUserID)
		if err != nil {
			return err
		}

		wallet, err := uc.WalletUsecase.GetWallet(txCtx, patient.ID)
		if err != nil {
			return err
		}
		cost := decimal.NewFromInt(request.PointsCost)
		if wallet.Balance.LessThan(cost) {
			if !request.AutoTopUp {
				return exceptions.ErrInsufficientFunds(wallet.ID, wallet.Balance.String(), cost.String())
			}
			_, err = uc.WalletUsecase.Credit(txCtx, contracts.LedgerEntry{
				UserID:      patient.ID,
				Amount:      cost.Sub(wallet.Balance),
				Description: constvars.WalletDescriptionAutoTopUp,
			})
			if err != nil {
				return err
			}
		}

		slot, err := uc.SlotUsecase.Publish(txCtx, doctor.ID, &requests.PublishSlot{
			StartTime: request.StartTime,
			EndTime:   request.StartTime.Add(time.Duration(request.DurationMinutes) * time.Minute),
		})
		if err != nil {
			return err
		}

		consultation, pending, err = uc.book(txCtx, patient, doctor, slot.ID, request.PointsCost)
		return err
	})
	if err != nil {
		uc.Log.Error("consultationUsecase.AdminCreate error creating consultation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Metrics.ConsultationsTotal.WithLabelValues(string(models.ConsultationStatusCreated)).Inc()
	utils.LogBusinessEvent(uc.Log, "consultation_booked_by_admin", requestID,
		zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
	)
	uc.dispatch(ctx, pending)
	return consultation, nil
}

func (uc *consultationUsecase) AdminUpdateStatus(ctx context.Context, consultationID string, request *requests.AdminUpdateConsultationStatus) (*models.Consultation, error) {
	switch strings.ToLower(request.Status) {
	case "completed":
		return uc.Complete(ctx, consultationID)
	case "cancelled":
		return uc.Cancel(ctx, consultationID, request.Reason)
	default:
		return nil, exceptions.ErrUnsupportedStatusUpdate(request.Status)
	}
}

func (uc *consultationUsecase) CancelExpired(ctx context.Context, cutoff time.Time) (int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationUsecase.CancelExpired called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time("cutoff", cutoff),
	)

	expired, err := uc.ConsultationRepository.FindExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, consultation := range expired {
		if ctx.Err() != nil {
			break
		}
		_, err := uc.Cancel(ctx, consultation.ID, constvars.ConsultationExpiredReason)
		if err != nil {
			// started or cancelled since the scan
			uc.Log.Warn("consultationUsecase.CancelExpired skipped consultation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
				zap.Error(err),
			)
			continue
		}
		cancelled++
	}

	uc.Metrics.SweeperCancelledTotal.Add(float64(cancelled))
	return cancelled, nil
}

func (uc *consultationUsecase) resolveParticipants(ctx context.Context, patientID, doctorID string) (*models.UserProfile, *models.UserProfile, error) {
	patient, err := uc.ProfileRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	if patient == nil {
		return nil, nil, exceptions.ErrUserNotFound(patientID)
	}
	if patient.Role != models.RolePatient {
		return nil, nil, exceptions.ErrRoleMismatch(patientID, patient.Role.String(), models.RolePatient.String())
	}

	doctor, err := uc.ProfileRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	if doctor == nil {
		return nil, nil, exceptions.ErrUserNotFound(doctorID)
	}
	if doctor.Role != models.RoleDoctor {
		return nil, nil, exceptions.ErrRoleMismatch(doctorID, doctor.Role.String(), models.RoleDoctor.String())
	}
	if !doctor.IsVerified {
		return nil, nil, exceptions.ErrDoctorNotVerified(doctorID)
	}
	return patient, doctor, nil
}

func (uc *consultationUsecase) buildDetail(ctx context.Context, consultation *models.Consultation) (*responses.ConsultationDetail, error) {
	detail := &responses.ConsultationDetail{
		Consultation: *consultation,
		DoctorName:   constvars.ConsultationDefaultDoctorName,
		PatientName:  constvars.ConsultationDefaultPatientName,
	}

	doctor, err := uc.ProfileRepository.FindByID(ctx, consultation.DoctorID)
	if err != nil {
		return nil, err
	}
	detail.DoctorName = displayName(doctor, constvars.ConsultationDefaultDoctorName)

	patient, err := uc.ProfileRepository.FindByID(ctx, consultation.PatientID)
	if err != nil {
		return nil, err
	}
	detail.PatientName = displayName(patient, constvars.ConsultationDefaultPatientName)

	slot, err := uc.SlotRepository.FindByID(ctx, consultation.SlotID)
	if err != nil {
		return nil, err
	}
	if slot != nil {
		detail.SlotStartTime = &slot.StartTime
		detail.SlotEndTime = &slot.EndTime
	}
	return detail, nil
}

// dispatch sends notifications queued by a committed transaction. The
// request context may already be cancelled by the time they go out.
func (uc *consultationUsecase) dispatch(ctx context.Context, pending []pendingNotification) {
	notifyCtx := context.WithoutCancel(ctx)
	for _, notification := range pending {
		uc.Notifier.Notify(notifyCtx, notification.userID, notification.title, notification.message)
	}
}

func displayName(profile *models.UserProfile, fallback string) string {
	if profile == nil || profile.DisplayName == "" {
		return fallback
	}
	return profile.DisplayName
}
