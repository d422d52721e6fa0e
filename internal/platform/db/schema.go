package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate applies the schema. Statements are idempotent so the process
// can run them unconditionally on every start.
//
// The partial unique index on active ledger rows is a storage-level
// backstop for the core invariant: at most one active borrow per book.
func Migrate(ctx context.Context, database *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			credential_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('admin', 'member'))
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS borrowed_books (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users (id),
			book_id UUID NOT NULL REFERENCES books (id),
			borrowed_at TIMESTAMPTZ NOT NULL,
			returned_at TIMESTAMPTZ
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS borrowed_books_one_active
			ON borrowed_books (book_id) WHERE returned_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS borrowed_books_user
			ON borrowed_books (user_id, borrowed_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return &StorageError{Op: fmt.Sprintf("apply migration %q", stmt[:40]), Err: err}
		}
	}
	return nil
}
