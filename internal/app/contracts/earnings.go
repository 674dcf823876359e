package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
)

type EarningsRepository interface {
	FindOrCreateByDoctorID(ctx context.Context, doctorID string) (*models.DoctorEarnings, error)
	FindOrCreateByDoctorIDForUpdate(ctx context.Context, doctorID string) (*models.DoctorEarnings, error)
	Update(ctx context.Context, earnings *models.DoctorEarnings) error
}

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	FindByID(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	FindByIDForUpdate(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	Update(ctx context.Context, withdrawal *models.Withdrawal) error
	FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Withdrawal, error)
}

type WithdrawalUsecase interface {
	GetEarnings(ctx context.Context, doctorID string) (*models.DoctorEarnings, error)
	Request(ctx context.Context, doctorID string, request *requests.RequestWithdrawal) (*models.Withdrawal, error)
	History(ctx context.Context, doctorID string, pagination *requests.Pagination) ([]models.Withdrawal, error)
	Approve(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	Complete(ctx context.Context, withdrawalID string) (*models.Withdrawal, error)
	Reject(ctx context.Context, withdrawalID string, request *requests.RejectWithdrawal) (*models.Withdrawal, error)
	Cancel(ctx context.Context, doctorID, withdrawalID string) (*models.Withdrawal, error)
}
