package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
	"time"
)

type SlotRepository interface {
	// LockDoctorSchedule serializes slot publication of one doctor until the
	// surrounding transaction ends.
	LockDoctorSchedule(ctx context.Context, doctorID string) error
	Create(ctx context.Context, slot *models.ScheduleSlot) error
	FindByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error)
	FindByDoctorID(ctx context.Context, doctorID string, availableOnly bool) ([]models.ScheduleSlot, error)
	FindOverlapping(ctx context.Context, doctorID string, start, end time.Time) ([]models.ScheduleSlot, error)
	// Reserve flips an available, unreserved slot to reserved in one
	// conditional write. It returns nil when the condition did not hold.
	Reserve(ctx context.Context, slotID string) (*models.ScheduleSlot, error)
	Release(ctx context.Context, slotID string) error
	Delete(ctx context.Context, slotID string) error
}

type SlotUsecase interface {
	Publish(ctx context.Context, doctorID string, request *requests.PublishSlot) (*models.ScheduleSlot, error)
	Reserve(ctx context.Context, slotID string) (*models.ScheduleSlot, error)
	Release(ctx context.Context, slotID string) error
	Delete(ctx context.Context, identity models.Identity, slotID string) error
	GetByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error)
	ListByDoctor(ctx context.Context, doctorID string, availableOnly bool) ([]models.ScheduleSlot, error)
}
