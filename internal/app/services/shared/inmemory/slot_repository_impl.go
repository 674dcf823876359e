package inmemory

import (
	"context"
	"sort"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"
)

type slotRepository struct {
	store *Store
}

func NewSlotRepository(store *Store) contracts.SlotRepository {
	return &slotRepository{store: store}
}

func (r *slotRepository) LockDoctorSchedule(ctx context.Context, doctorID string) error {
	return nil
}

func (r *slotRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	now := time.Now()
	slot.IsAvailable = true
	slot.IsReserved = false
	slot.CreatedAt = now
	slot.UpdatedAt = now
	r.store.slots[slot.ID] = *slot
	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	slot, ok := r.store.slots[slotID]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *slotRepository) FindByDoctorID(ctx context.Context, doctorID string, availableOnly bool) ([]models.ScheduleSlot, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var slots []models.ScheduleSlot
	for _, slot := range r.store.slots {
		if slot.DoctorID != doctorID {
			continue
		}
		if availableOnly && !slot.IsReservable() {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}

func (r *slotRepository) FindOverlapping(ctx context.Context, doctorID string, start, end time.Time) ([]models.ScheduleSlot, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var slots []models.ScheduleSlot
	for _, slot := range r.store.slots {
		if slot.DoctorID == doctorID && slot.Overlaps(start, end) {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func (r *slotRepository) Reserve(ctx context.Context, slotID string) (*models.ScheduleSlot, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	slot, ok := r.store.slots[slotID]
	if !ok || !slot.IsReservable() {
		return nil, nil
	}
	slot.IsAvailable = false
	slot.IsReserved = true
	slot.UpdatedAt = time.Now()
	r.store.slots[slotID] = slot
	return &slot, nil
}

func (r *slotRepository) Release(ctx context.Context, slotID string) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	slot, ok := r.store.slots[slotID]
	if !ok {
		return nil
	}
	slot.IsAvailable = true
	slot.IsReserved = false
	slot.UpdatedAt = time.Now()
	r.store.slots[slotID] = slot
	return nil
}

func (r *slotRepository) Delete(ctx context.Context, slotID string) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	delete(r.store.slots, slotID)
	return nil
}
