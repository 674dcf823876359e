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

type withdrawalPostgresRepository struct {
	DB *sql.DB
}

func NewWithdrawalPostgresRepository(db *sql.DB) contracts.WithdrawalRepository {
	return &withdrawalPostgresRepository{
		DB: db,
	}
}

func (repo *withdrawalPostgresRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertWithdrawal,
		withdrawal.ID,
		withdrawal.DoctorID,
		withdrawal.Amount,
		withdrawal.BankAccount,
		withdrawal.BankName,
		withdrawal.Status,
		withdrawal.Description,
	).Scan(&withdrawal.CreatedAt, &withdrawal.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *withdrawalPostgresRepository) FindByID(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	return repo.findOne(ctx, queries.GetWithdrawalByID, withdrawalID)
}

func (repo *withdrawalPostgresRepository) FindByIDForUpdate(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	return repo.findOne(ctx, queries.GetWithdrawalByIDForUpdate, withdrawalID)
}

func (repo *withdrawalPostgresRepository) Update(ctx context.Context, withdrawal *models.Withdrawal) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.UpdateWithdrawal,
		withdrawal.ID,
		withdrawal.Status,
		withdrawal.RejectionReason,
		withdrawal.ApprovedAt,
		withdrawal.CompletedAt,
	).Scan(&withdrawal.UpdatedAt)
	if err == sql.ErrNoRows {
		return exceptions.ErrWithdrawalNotFound(withdrawal.ID)
	} else if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *withdrawalPostgresRepository) FindByDoctorID(ctx context.Context, doctorID string, limit, offset int) ([]models.Withdrawal, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetWithdrawalsByDoctorID, doctorID, limit, offset)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var withdrawals []models.Withdrawal
	for rows.Next() {
		withdrawal, err := scanWithdrawal(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		withdrawals = append(withdrawals, *withdrawal)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return withdrawals, nil
}

func (repo *withdrawalPostgresRepository) findOne(ctx context.Context, query, withdrawalID string) (*models.Withdrawal, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	withdrawal, err := scanWithdrawal(executor.QueryRowContext(ctx, query, withdrawalID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return withdrawal, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWithdrawal(row rowScanner) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := row.Scan(
		&withdrawal.ID,
		&withdrawal.DoctorID,
		&withdrawal.Amount,
		&withdrawal.BankAccount,
		&withdrawal.BankName,
		&withdrawal.Status,
		&withdrawal.Description,
		&withdrawal.RejectionReason,
		&withdrawal.ApprovedAt,
		&withdrawal.CompletedAt,
		&withdrawal.CreatedAt,
		&withdrawal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &withdrawal, nil
}
