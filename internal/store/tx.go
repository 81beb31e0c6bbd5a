// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Abdel Wahed

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abdelwahed/go-task-keeper/internal/logger"
)

// querier is the subset of database operations shared by *sql.DB and
// *sql.Tx. Repositories run against it, so the same repository code
// serves both direct calls and transaction-scoped ones.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithinTx begins a transaction, hands fn a repository set bound to that
// transaction, and commits once fn returns nil. Any error from fn rolls
// every write back (via defer), leaving the database untouched.
func (db *DB) WithinTx(ctx context.Context, fn func(repos *Repositories) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	repos := &Repositories{
		Users: &userRepository{db: tx},
		Tasks: &taskRepository{db: tx},
		Notes: &noteRepository{db: tx},
	}

	if err = fn(repos); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "*DB.WithinTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
