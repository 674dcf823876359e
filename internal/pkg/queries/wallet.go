package queries

const (
	EnsureWalletExists = `
		INSERT INTO wallets (id, user_id, balance, frozen_balance)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`

	GetWalletByUserID = `
		SELECT
			id,
			user_id,
			balance,
			frozen_balance,
			created_at,
			updated_at
		FROM wallets
		WHERE user_id = $1
	`

	GetWalletByUserIDForUpdate = `
		SELECT
			id,
			user_id,
			balance,
			frozen_balance,
			created_at,
			updated_at
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`

	UpdateWalletBalances = `
		UPDATE wallets
		SET
			balance = $2,
			frozen_balance = $3,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	InsertWalletTransaction = `
		INSERT INTO wallet_transactions (
			id,
			wallet_id,
			transaction_type,
			amount,
			balance_before,
			balance_after,
			related_consultation_id,
			description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	GetWalletTransactionsByWalletID = `
		SELECT
			id,
			wallet_id,
			transaction_type,
			amount,
			balance_before,
			balance_after,
			related_consultation_id,
			description,
			created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	GetAllWalletTransactions = `
		SELECT
			id,
			wallet_id,
			transaction_type,
			amount,
			balance_before,
			balance_after,
			related_consultation_id,
			description,
			created_at
		FROM wallet_transactions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
)
