package transactor

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type txContextKey struct{}

// Executor is the subset of *sql.DB and *sql.Tx used by the repositories.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// GetExecutor returns the transaction carried by ctx, or db when there is none.
func GetExecutor(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type postgresTransactor struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPostgresTransactor(db *sql.DB, logger *zap.Logger) contracts.Transactor {
	return &postgresTransactor{
		DB:  db,
		Log: logger,
	}
}

func (t *postgresTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	tx, err := t.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		t.Log.Error("postgresTransactor.WithinTransaction error beginning transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBBeginTx(err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	err = fn(context.WithValue(ctx, txContextKey{}, tx))
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			t.Log.Error("postgresTransactor.WithinTransaction error rolling back transaction",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(rollbackErr),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		t.Log.Error("postgresTransactor.WithinTransaction error committing transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBCommitTx(err)
	}
	return nil
}
