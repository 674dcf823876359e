package inmemory

import (
	"context"
	"sort"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"
)

type profileRepository struct {
	store *Store
}

func NewProfileRepository(store *Store) contracts.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	profile, ok := r.store.users[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (r *profileRepository) FindByRole(ctx context.Context, role models.Role) ([]models.UserProfile, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var profiles []models.UserProfile
	for _, profile := range r.store.users {
		if profile.Role == role {
			profiles = append(profiles, profile)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.store.users[profile.ID] = *profile
	return nil
}
