package contracts

import (
	"context"
	"telemed-service/internal/app/models"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*models.UserProfile, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
}

type IdentityService interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	IssueToken(ctx context.Context, identity models.Identity) (string, error)
}
