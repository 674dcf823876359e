package slot

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
	"time"
)

type slotPostgresRepository struct {
	DB *sql.DB
}

func NewSlotPostgresRepository(db *sql.DB) contracts.SlotRepository {
	return &slotPostgresRepository{
		DB: db,
	}
}

func (repo *slotPostgresRepository) LockDoctorSchedule(ctx context.Context, doctorID string) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	_, err := executor.ExecContext(ctx, queries.LockDoctorSchedule, doctorID)
	if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}
	return nil
}

func (repo *slotPostgresRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertScheduleSlot,
		slot.ID,
		slot.DoctorID,
		slot.StartTime,
		slot.EndTime,
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	slot.IsAvailable = true
	slot.IsReserved = false
	return nil
}

func (repo *slotPostgresRepository) FindByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	slot, err := scanSlot(executor.QueryRowContext(ctx, queries.GetScheduleSlotByID, slotID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return slot, nil
}

func (repo *slotPostgresRepository) FindByDoctorID(ctx context.Context, doctorID string, availableOnly bool) ([]models.ScheduleSlot, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetScheduleSlotsByDoctorID, doctorID, availableOnly)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()
	return scanSlots(rows)
}

func (repo *slotPostgresRepository) FindOverlapping(ctx context.Context, doctorID string, start, end time.Time) ([]models.ScheduleSlot, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetOverlappingScheduleSlots, doctorID, start, end)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()
	return scanSlots(rows)
}

func (repo *slotPostgresRepository) Reserve(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	slot, err := scanSlot(executor.QueryRowContext(ctx, queries.ReserveScheduleSlot, slotID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return slot, nil
}

func (repo *slotPostgresRepository) Release(ctx context.Context, slotID string) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	_, err := executor.ExecContext(ctx, queries.ReleaseScheduleSlot, slotID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *slotPostgresRepository) Delete(ctx context.Context, slotID string) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	_, err := executor.ExecContext(ctx, queries.DeleteScheduleSlot, slotID)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := row.Scan(
		&slot.ID,
		&slot.DoctorID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&slot.IsReserved,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return slots, nil
}
