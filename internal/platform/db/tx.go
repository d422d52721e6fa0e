package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// RunInTx starts a transaction and runs fn inside it. A nil return from fn
// commits, any error rolls back. Every borrow/return unit of work goes
// through here so the ledger write and the availability flip are never
// observable half-applied.
func RunInTx(ctx context.Context, database *sqlx.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := database.BeginTxx(ctx, opts)
	if err != nil {
		return &StorageError{Op: "begin transaction", Err: err}
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit transaction", Err: err}
	}
	return nil
}
