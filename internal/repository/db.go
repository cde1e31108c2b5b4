package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Querier runs statements. *pgxpool.Pool, pgx.Tx and pgxmock all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBTX is a Querier that can also open transactions.
type DBTX interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Transactor runs a function inside a database transaction.
type Transactor interface {
	// WithTx commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(q Querier) error) error
}

type transactor struct {
	db     DBTX
	logger zerolog.Logger
}

// NewTransactor creates a Transactor over db.
func NewTransactor(db DBTX, logger zerolog.Logger) Transactor {
	return &transactor{
		db:     db,
		logger: logger.With().Str("repository", "tx").Logger(),
	}
}

func (t *transactor) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			t.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
