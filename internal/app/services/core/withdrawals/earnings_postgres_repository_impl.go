package withdrawals

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
)

type earningsPostgresRepository struct {
	DB *sql.DB
}

func NewEarningsPostgresRepository(db *sql.DB) contracts.EarningsRepository {
	return &earningsPostgresRepository{
		DB: db,
	}
}

func (repo *earningsPostgresRepository) FindOrCreateByDoctorID(ctx context.Context, doctorID string) (*models.DoctorEarnings, error) {
	return repo.findOrCreate(ctx, doctorID, queries.GetDoctorEarningsByDoctorID)
}

func (repo *earningsPostgresRepository) FindOrCreateByDoctorIDForUpdate(ctx context.Context, doctorID string) (*models.DoctorEarnings, error) {
	return repo.findOrCreate(ctx, doctorID, queries.GetDoctorEarningsByDoctorIDForUpdate)
}

func (repo *earningsPostgresRepository) Update(ctx context.Context, earnings *models.DoctorEarnings) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.UpdateDoctorEarnings,
		earnings.DoctorID,
		earnings.TotalEarned,
		earnings.AvailableBalance,
		earnings.TotalWithdrawn,
	).Scan(&earnings.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *earningsPostgresRepository) findOrCreate(ctx context.Context, doctorID, query string) (*models.DoctorEarnings, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	_, err := executor.ExecContext(ctx, queries.EnsureDoctorEarningsExists, doctorID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	var earnings models.DoctorEarnings
	err = executor.QueryRowContext(ctx, query, doctorID).Scan(
		&earnings.DoctorID,
		&earnings.TotalEarned,
		&earnings.AvailableBalance,
		&earnings.TotalWithdrawn,
		&earnings.CreatedAt,
		&earnings.UpdatedAt,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &earnings, nil
}
