package inmemory

import (
	"context"
	"sort"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/exceptions"
	"time"
)

type consultationRepository struct {
	store *Store
}

func NewConsultationRepository(store *Store) contracts.ConsultationRepository {
	return &consultationRepository{store: store}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *models.Consultation) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	now := time.Now()
	consultation.CreatedAt = now
	consultation.UpdatedAt = now
	r.store.consultations[consultation.ID] = *consultation
	r.store.consultationOrder = append(r.store.consultationOrder, consultation.ID)
	return nil
}

func (r *consultationRepository) FindByID(ctx context.Context, consultationID string) (*models.Consultation, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	consultation, ok := r.store.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByIDForUpdate(ctx context.Context, consultationID string) (*models.Consultation, error) {
	return r.FindByID(ctx, consultationID)
}

func (r *consultationRepository) Update(ctx context.Context, consultation *models.Consultation) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	if _, ok := r.store.consultations[consultation.ID]; !ok {
		return nil
	}
	consultation.UpdatedAt = time.Now()
	r.store.consultations[consultation.ID] = *consultation
	return nil
}

func (r *consultationRepository) FindByPatientID(ctx context.Context, patientID string, limit, offset int) ([]models.Consultation, error) {
	return r.filter(ctx, limit, offset, func(c models.Consultation) bool { return c.PatientID == patientID })
}

func (r *consultationRepository) FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Consultation, error) {
	return r.filter(ctx, limit, offset, func(c models.Consultation) bool { return c.DoctorID == doctorID })
}

func (r *consultationRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Consultation, error) {
	return r.filter(ctx, limit, offset, func(models.Consultation) bool { return true })
}

func (r *consultationRepository) CountBySlotID(ctx context.Context, slotID string) (int, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	count := 0
	for _, consultation := range r.store.consultations {
		if consultation.SlotID == slotID {
			count++
		}
	}
	return count, nil
}

func (r *consultationRepository) CountByDoctorAndPatient(ctx context.Context, doctorID, patientID string) (int, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	count := 0
	for _, consultation := range r.store.consultations {
		if consultation.DoctorID == doctorID && consultation.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (r *consultationRepository) FindExpired(ctx context.Context, cutoff time.Time) ([]models.Consultation, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	type expired struct {
		consultation models.Consultation
		slotEnd      time.Time
	}
	var found []expired
	for _, consultation := range r.store.consultations {
		if consultation.Status != models.ConsultationStatusCreated {
			continue
		}
		slot, ok := r.store.slots[consultation.SlotID]
		if !ok || !slot.EndTime.Before(cutoff) {
			continue
		}
		found = append(found, expired{consultation: consultation, slotEnd: slot.EndTime})
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].slotEnd.Before(found[j].slotEnd)
	})

	consultations := make([]models.Consultation, 0, len(found))
	for _, item := range found {
		consultations = append(consultations, item.consultation)
	}
	return consultations, nil
}

func (r *consultationRepository) filter(ctx context.Context, limit, offset int, keep func(models.Consultation) bool) ([]models.Consultation, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var matched []models.Consultation
	for i := len(r.store.consultationOrder) - 1; i >= 0; i-- {
		consultation := r.store.consultations[r.store.consultationOrder[i]]
		if keep(consultation) {
			matched = append(matched, consultation)
		}
	}
	start, end := page(len(matched), limit, offset)
	return matched[start:end], nil
}

type settlementRepository struct {
	store *Store
}

func NewSettlementRepository(store *Store) contracts.SettlementRepository {
	return &settlementRepository{store: store}
}

func (r *settlementRepository) Create(ctx context.Context, settlement *models.ConsultationSettlement) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	if _, exists := r.store.settlements[settlement.ConsultationID]; exists {
		return exceptions.ErrSettlementAlreadyRecorded(settlement.ConsultationID)
	}
	settlement.CreatedAt = time.Now()
	r.store.settlements[settlement.ConsultationID] = *settlement
	return nil
}

func (r *settlementRepository) FindByConsultationID(ctx context.Context, consultationID string) (*models.ConsultationSettlement, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	settlement, ok := r.store.settlements[consultationID]
	if !ok {
		return nil, nil
	}
	return &settlement, nil
}
