package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ErrRollbackFailed marks a transaction whose rollback did not complete.
// The store may hold a partial write and needs out-of-band repair.
var ErrRollbackFailed = errors.New("rollback failed")

// DBTX is the query surface repositories run against. Both a pooled
// *sql.DB and an open *sql.Tx satisfy it, so the same repository code
// serves reads outside a transaction and writes inside one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sql.DB.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db, logger: slog.Default()}
}

// WithLogger sets the logger used to report failed rollbacks.
func (u *SQLiteUnitOfWork) WithLogger(logger *slog.Logger) *SQLiteUnitOfWork {
	if logger != nil {
		u.logger = logger
	}
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			u.logger.ErrorContext(ctx, "data_integrity",
				"reason", "transaction rollback failed",
				"rollback_error", rbErr.Error(),
				"error", err.Error(),
			)
			return fmt.Errorf("%w: %v (original error: %w)", ErrRollbackFailed, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
