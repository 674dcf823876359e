package slot

import (
	"context"
	"sync"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase() (contracts.SlotUsecase, contracts.ConsultationRepository) {
	store := inmemory.NewStore()
	consultations := inmemory.NewConsultationRepository(store)
	uc := NewSlotUsecase(inmemory.NewSlotRepository(store), consultations, store, metrics.NewNopCollector(), zap.NewNop())
	return uc, consultations
}

func TestSlotUsecase_Publish(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("Published slots start available", func(t *testing.T) {
		uc, _ := newTestUsecase()

		slot, err := uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base, EndTime: base.Add(30 * time.Minute)})
		require.NoError(t, err)
		assert.True(t, slot.IsReservable())
		assert.Equal(t, "doctor-1", slot.DoctorID)
	})

	t.Run("Empty or inverted ranges are rejected", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, err := uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base, EndTime: base})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotInvalidRange))

		_, err = uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base, EndTime: base.Add(-time.Minute)})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotInvalidRange))
	})

	t.Run("Overlapping slots of one doctor are rejected", func(t *testing.T) {
		uc, _ := newTestUsecase()
		_, err := uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)

		_, err = uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base.Add(30 * time.Minute), EndTime: base.Add(90 * time.Minute)})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotOverlap))

		_, err = uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour)})
		assert.NoError(t, err, "back-to-back slots do not overlap")

		_, err = uc.Publish(ctx, "doctor-2", &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		assert.NoError(t, err, "other doctors are independent")
	})
}

func TestSlotUsecase_Reserve(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("Only one concurrent reservation wins", func(t *testing.T) {
		uc, _ := newTestUsecase()
		slot, err := uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			won int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := uc.Reserve(ctx, slot.ID); err == nil {
					mu.Lock()
					won++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, won)
	})

	t.Run("Reserved slot reports unavailable until released", func(t *testing.T) {
		uc, _ := newTestUsecase()
		slot, err := uc.Publish(ctx, "doctor-1", &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)

		_, err = uc.Reserve(ctx, slot.ID)
		require.NoError(t, err)
		_, err = uc.Reserve(ctx, slot.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotUnavailable))

		available, err := uc.ListByDoctor(ctx, "doctor-1", true)
		require.NoError(t, err)
		assert.Empty(t, available)

		require.NoError(t, uc.Release(ctx, slot.ID))
		_, err = uc.Reserve(ctx, slot.ID)
		assert.NoError(t, err)
	})

	t.Run("Unknown slot is not found", func(t *testing.T) {
		uc, _ := newTestUsecase()
		_, err := uc.Reserve(ctx, "missing")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))

		_, err = uc.GetByID(ctx, "missing")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}

func TestSlotUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	owner := models.Identity{UserID: "doctor-1", Role: models.RoleDoctor}

	t.Run("Owner deletes a free slot", func(t *testing.T) {
		uc, _ := newTestUsecase()
		slot, err := uc.Publish(ctx, owner.UserID, &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)

		require.NoError(t, uc.Delete(ctx, owner, slot.ID))
		_, err = uc.GetByID(ctx, slot.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})

	t.Run("Other doctors and patients cannot delete", func(t *testing.T) {
		uc, _ := newTestUsecase()
		slot, err := uc.Publish(ctx, owner.UserID, &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)

		err = uc.Delete(ctx, models.Identity{UserID: "doctor-2", Role: models.RoleDoctor}, slot.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotNotOwned))

		err = uc.Delete(ctx, models.Identity{UserID: "patient-1", Role: models.RolePatient}, slot.ID)
		assert.Error(t, err)

		err = uc.Delete(ctx, models.Identity{UserID: "admin-1", Role: models.RoleAdmin}, slot.ID)
		assert.NoError(t, err, "admins may delete any free slot")
	})

	t.Run("Slots referenced by a consultation stay", func(t *testing.T) {
		uc, consultations := newTestUsecase()
		slot, err := uc.Publish(ctx, owner.UserID, &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)

		require.NoError(t, consultations.Create(ctx, &models.Consultation{ID: "c-1", SlotID: slot.ID, DoctorID: owner.UserID, Status: models.ConsultationStatusCancelled}))

		err = uc.Delete(ctx, owner, slot.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotInUse))
	})

	t.Run("Reserved slots stay", func(t *testing.T) {
		uc, _ := newTestUsecase()
		slot, err := uc.Publish(ctx, owner.UserID, &requests.PublishSlot{StartTime: base, EndTime: base.Add(time.Hour)})
		require.NoError(t, err)
		_, err = uc.Reserve(ctx, slot.ID)
		require.NoError(t, err)

		err = uc.Delete(ctx, owner, slot.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotInUse))
	})
}
