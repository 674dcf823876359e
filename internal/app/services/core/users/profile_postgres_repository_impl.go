package users

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
)

type profilePostgresRepository struct {
	DB *sql.DB
}

func NewProfilePostgresRepository(db *sql.DB) contracts.ProfileRepository {
	return &profilePostgresRepository{
		DB: db,
	}
}

func (repo *profilePostgresRepository) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	profile, err := scanProfile(executor.QueryRowContext(ctx, queries.GetUserProfileByID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return profile, nil
}

func (repo *profilePostgresRepository) FindByRole(ctx context.Context, role models.Role) ([]models.UserProfile, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetUserProfilesByRole, role)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return profiles, nil
}

func (repo *profilePostgresRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertUserProfile,
		profile.ID,
		profile.Role,
		profile.Email,
		profile.DisplayName,
		profile.IsVerified,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.Role,
		&profile.Email,
		&profile.DisplayName,
		&profile.IsVerified,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
