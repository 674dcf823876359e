package withdrawals

import (
	"context"
	"fmt"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type withdrawalUsecase struct {
	WithdrawalRepository contracts.WithdrawalRepository
	EarningsRepository   contracts.EarningsRepository
	ProfileRepository    contracts.ProfileRepository
	Notifier             contracts.Notifier
	Transactor           contracts.Transactor
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewWithdrawalUsecase(
	withdrawalRepository contracts.WithdrawalRepository,
	earningsRepository contracts.EarningsRepository,
	profileRepository contracts.ProfileRepository,
	notifier contracts.Notifier,
	transactor contracts.Transactor,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WithdrawalUsecase {
	return &withdrawalUsecase{
		WithdrawalRepository: withdrawalRepository,
		EarningsRepository:   earningsRepository,
		ProfileRepository:    profileRepository,
		Notifier:             notifier,
		Transactor:           transactor,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

func (uc *withdrawalUsecase) GetEarnings(ctx context.Context, doctorID string) (*models.DoctorEarnings, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("withdrawalUsecase.GetEarnings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	return uc.EarningsRepository.FindOrCreateByDoctorID(ctx, doctorID)
}

func (uc *withdrawalUsecase) Request(ctx context.Context, doctorID string, request *requests.RequestWithdrawal) (*models.Withdrawal, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("withdrawalUsecase.Request called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingAmountKey, request.Amount.String()),
	)

	minimum := uc.InternalConfig.Withdrawal.MinimumAmount
	if request.Amount.LessThan(minimum) {
		return nil, exceptions.ErrWithdrawalBelowMinimum(request.Amount.String(), minimum.String())
	}

	withdrawal := &models.Withdrawal{
		ID:          uuid.NewString(),
		DoctorID:    doctorID,
		Amount:      request.Amount,
		BankAccount: request.BankAccount,
		BankName:    request.BankName,
		Status:      models.WithdrawalStatusPending,
		Description: fmt.Sprintf("Withdrawal to %s", request.BankName),
	}

	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		earnings, err := uc.EarningsRepository.FindOrCreateByDoctorIDForUpdate(txCtx, doctorID)
		if err != nil {
			return err
		}
		if earnings.AvailableBalance.LessThan(request.Amount) {
			return exceptions.ErrInsufficientEarnings(doctorID, earnings.AvailableBalance.String(), request.Amount.String())
		}

		earnings.AvailableBalance = earnings.AvailableBalance.Sub(request.Amount)
		err = uc.EarningsRepository.Update(txCtx, earnings)
		if err != nil {
			return err
		}

		return uc.WithdrawalRepository.Create(txCtx, withdrawal)
	})
	if err != nil {
		uc.Log.Error("withdrawalUsecase.Request error creating withdrawal",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "withdrawal_requested", requestID,
		zap.String(constvars.LoggingWithdrawalIDKey, withdrawal.ID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingAmountKey, withdrawal.Amount.String()),
	)

	notifyCtx := context.WithoutCancel(ctx)
	amount := withdrawal.Amount.StringFixed(2)
	uc.Notifier.Notify(notifyCtx, doctorID, constvars.NotificationTitleWithdrawalCreated, fmt.Sprintf(constvars.NotificationMessageWithdrawalCreatedFormat, amount))
	uc.notifyAdmins(notifyCtx, doctorID, amount)

	return withdrawal, nil
}

func (uc *withdrawalUsecase) notifyAdmins(ctx context.Context, doctorID, amount string) {
	doctorName := constvars.ConsultationDefaultDoctorName
	doctor, err := uc.ProfileRepository.FindByID(ctx, doctorID)
	if err == nil && doctor != nil && doctor.DisplayName != "" {
		doctorName = doctor.DisplayName
	}

	admins, err := uc.ProfileRepository.FindByRole(ctx, models.RoleAdmin)
	if err != nil {
		uc.Log.Warn("withdrawalUsecase.notifyAdmins error listing admins", zap.Error(err))
		return
	}
	message := fmt.Sprintf(constvars.NotificationMessageWithdrawalRequestedFormat, doctorName, amount)
	for _, admin := range admins {
		uc.Notifier.Notify(ctx, admin.ID, constvars.NotificationTitleWithdrawalRequested, message)
	}
}

func (uc *withdrawalUsecase) History(ctx context.Context, doctorID string, pagination *requests.Pagination) ([]models.Withdrawal, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("withdrawalUsecase.History called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingLimitKey, pagination.Limit),
		zap.Int(constvars.LoggingOffsetKey, pagination.Offset),
	)

	return uc.WithdrawalRepository.FindByDoctorID(ctx, doctorID, pagination.Limit, pagination.Offset)
}

func (uc *withdrawalUsecase) Approve(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	withdrawal, err := uc.transition(ctx, withdrawalID, models.WithdrawalStatusApproved, func(_ context.Context, withdrawal *models.Withdrawal) error {
		now := time.Now()
		withdrawal.ApprovedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Notifier.Notify(context.WithoutCancel(ctx), withdrawal.DoctorID, constvars.NotificationTitleWithdrawalApproved,
		fmt.Sprintf(constvars.NotificationMessageWithdrawalApprovedFormat, withdrawal.Amount.StringFixed(2)))
	return withdrawal, nil
}

func (uc *withdrawalUsecase) Complete(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	withdrawal, err := uc.transition(ctx, withdrawalID, models.WithdrawalStatusCompleted, func(txCtx context.Context, withdrawal *models.Withdrawal) error {
		earnings, err := uc.EarningsRepository.FindOrCreateByDoctorIDForUpdate(txCtx, withdrawal.DoctorID)
		if err != nil {
			return err
		}
		earnings.TotalWithdrawn = earnings.TotalWithdrawn.Add(withdrawal.Amount)
		if err := uc.EarningsRepository.Update(txCtx, earnings); err != nil {
			return err
		}

		now := time.Now()
		withdrawal.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Notifier.Notify(context.WithoutCancel(ctx), withdrawal.DoctorID, constvars.NotificationTitleWithdrawalCompleted,
		fmt.Sprintf(constvars.NotificationMessageWithdrawalCompletedFormat, withdrawal.Amount.StringFixed(2)))
	return withdrawal, nil
}

func (uc *withdrawalUsecase) Reject(ctx context.Context, withdrawalID string, request *requests.RejectWithdrawal) (*models.Withdrawal, error) {
	withdrawal, err := uc.transition(ctx, withdrawalID, models.WithdrawalStatusRejected, func(txCtx context.Context, withdrawal *models.Withdrawal) error {
		reason := request.Reason
		withdrawal.RejectionReason = &reason
		return uc.refund(txCtx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	uc.Notifier.Notify(context.WithoutCancel(ctx), withdrawal.DoctorID, constvars.NotificationTitleWithdrawalRejected,
		fmt.Sprintf(constvars.NotificationMessageWithdrawalRejectedFormat, request.Reason))
	return withdrawal, nil
}

func (uc *withdrawalUsecase) Cancel(ctx context.Context, doctorID, withdrawalID string) (*models.Withdrawal, error) {
	return uc.transition(ctx, withdrawalID, models.WithdrawalStatusCancelled, func(txCtx context.Context, withdrawal *models.Withdrawal) error {
		if withdrawal.DoctorID != doctorID {
			return exceptions.ErrWithdrawalNotFound(withdrawalID)
		}
		return uc.refund(txCtx, withdrawal)
	})
}

// refund returns the reserved amount of a withdrawal that will not be paid.
func (uc *withdrawalUsecase) refund(ctx context.Context, withdrawal *models.Withdrawal) error {
	earnings, err := uc.EarningsRepository.FindOrCreateByDoctorIDForUpdate(ctx, withdrawal.DoctorID)
	if err != nil {
		return err
	}
	earnings.AvailableBalance = earnings.AvailableBalance.Add(withdrawal.Amount)
	return uc.EarningsRepository.Update(ctx, earnings)
}

func (uc *withdrawalUsecase) transition(ctx context.Context, withdrawalID string, next models.WithdrawalStatus, apply func(ctx context.Context, withdrawal *models.Withdrawal) error) (*models.Withdrawal, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("withdrawalUsecase.transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWithdrawalIDKey, withdrawalID),
		zap.String(constvars.LoggingWithdrawalStatusKey, string(next)),
	)

	var withdrawal *models.Withdrawal
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := uc.WithdrawalRepository.FindByIDForUpdate(txCtx, withdrawalID)
		if err != nil {
			return err
		}
		if current == nil {
			return exceptions.ErrWithdrawalNotFound(withdrawalID)
		}
		if !current.Status.CanTransitionTo(next) {
			return exceptions.ErrWithdrawalInvalidTransition(withdrawalID, string(current.Status), string(next))
		}

		if err := apply(txCtx, current); err != nil {
			return err
		}

		current.Status = next
		if err := uc.WithdrawalRepository.Update(txCtx, current); err != nil {
			return err
		}
		withdrawal = current
		return nil
	})
	if err != nil {
		uc.Log.Error("withdrawalUsecase.transition error changing status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWithdrawalIDKey, withdrawalID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "withdrawal_status_changed", requestID,
		zap.String(constvars.LoggingWithdrawalIDKey, withdrawal.ID),
		zap.String(constvars.LoggingWithdrawalStatusKey, string(withdrawal.Status)),
	)
	return withdrawal, nil
}
