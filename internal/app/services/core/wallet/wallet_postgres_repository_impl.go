package wallet

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"

	"github.com/google/uuid"
)

type walletPostgresRepository struct {
	DB *sql.DB
}

func NewWalletPostgresRepository(db *sql.DB) contracts.WalletRepository {
	return &walletPostgresRepository{
		DB: db,
	}
}

func (repo *walletPostgresRepository) FindOrCreateByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	return repo.findOrCreate(ctx, userID, queries.GetWalletByUserID)
}

func (repo *walletPostgresRepository) FindOrCreateByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	return repo.findOrCreate(ctx, userID, queries.GetWalletByUserIDForUpdate)
}

func (repo *walletPostgresRepository) findOrCreate(ctx context.Context, userID, query string) (*models.Wallet, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)

	_, err := executor.ExecContext(ctx, queries.EnsureWalletExists, uuid.NewString(), userID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	var wallet models.Wallet
	err = executor.QueryRowContext(ctx, query, userID).Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.FrozenBalance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &wallet, nil
}

func (repo *walletPostgresRepository) UpdateBalances(ctx context.Context, wallet *models.Wallet) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.UpdateWalletBalances,
		wallet.ID,
		wallet.Balance,
		wallet.FrozenBalance,
	).Scan(&wallet.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *walletPostgresRepository) InsertTransaction(ctx context.Context, transaction *models.WalletTransaction) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertWalletTransaction,
		transaction.ID,
		transaction.WalletID,
		transaction.Type,
		transaction.Amount,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.RelatedConsultationID,
		transaction.Description,
	).Scan(&transaction.CreatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *walletPostgresRepository) FindTransactionsByWalletID(ctx context.Context, walletID string, limit, offset int) ([]models.WalletTransaction, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetWalletTransactionsByWalletID, walletID, limit, offset)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return scanWalletTransactions(rows)
}

func (repo *walletPostgresRepository) FindAllTransactions(ctx context.Context, limit, offset int) ([]models.WalletTransaction, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetAllWalletTransactions, limit, offset)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return scanWalletTransactions(rows)
}

func scanWalletTransactions(rows *sql.Rows) ([]models.WalletTransaction, error) {
	var transactions []models.WalletTransaction
	for rows.Next() {
		var model models.WalletTransaction
		if err := rows.Scan(
			&model.ID,
			&model.WalletID,
			&model.Type,
			&model.Amount,
			&model.BalanceBefore,
			&model.BalanceAfter,
			&model.RelatedConsultationID,
			&model.Description,
			&model.CreatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		transactions = append(transactions, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	return transactions, nil
}
