// internal/lending/implementation.go
package lending

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spoorthi225f2/Library/internal/platform/db"
)

// service implements the Service interface.
type service struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

// NewService creates a new lending service instance.
func NewService(database *sqlx.DB) Service {
	return &service{
		db:     database,
		tracer: otel.Tracer("library/lending"),
	}
}

// Borrow checks the book out to the user. The availability check, the
// ledger insert and the flag flip run in one transaction with the book
// row locked, so two concurrent borrows of the same book serialize and
// only the first succeeds.
func (s *service) Borrow(ctx context.Context, userID, bookID uuid.UUID) (*BorrowRecord, error) {
	ctx, span := s.tracer.Start(ctx, "lending.borrow",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("book.id", bookID.String()),
		),
	)
	defer span.End()

	record := &BorrowRecord{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: time.Now().UTC(),
	}

	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		available, err := lockBookRow(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if !available {
			return ErrBookUnavailable
		}

		insert := `
			INSERT INTO borrowed_books (id, user_id, book_id, borrowed_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, insert, record.ID, record.UserID, record.BookID, record.BorrowedAt); err != nil {
			return &db.StorageError{Op: "insert borrow record", Err: err}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE books SET available = FALSE WHERE id = $1`, bookID); err != nil {
			return &db.StorageError{Op: "mark book borrowed", Err: err}
		}
		return nil
	})
	if err != nil {
		span.SetAttributes(attribute.String("borrow.outcome", err.Error()))
		return nil, err
	}

	span.SetAttributes(attribute.Bool("borrow.success", true))
	return record, nil
}

// Return closes the active record matching both user and book and makes
// the book available again, atomically. ReturnedAt is set exactly once;
// a second return of the same book fails with ErrNoActiveBorrow.
func (s *service) Return(ctx context.Context, userID, bookID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "lending.return",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("book.id", bookID.String()),
		),
	)
	defer span.End()

	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		// Lock the book row first so borrow and return take locks in the
		// same order.
		if _, err := lockBookRow(ctx, tx, bookID); err != nil {
			if errors.Is(err, ErrBookNotFound) {
				return ErrNoActiveBorrow
			}
			return err
		}

		var recordID uuid.UUID
		find := `
			SELECT id FROM borrowed_books
			WHERE user_id = $1 AND book_id = $2 AND returned_at IS NULL
		`
		if err := tx.GetContext(ctx, &recordID, find, userID, bookID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoActiveBorrow
			}
			return &db.StorageError{Op: "find active borrow", Err: err}
		}

		update := `UPDATE borrowed_books SET returned_at = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, update, time.Now().UTC(), recordID); err != nil {
			return &db.StorageError{Op: "close borrow record", Err: err}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE books SET available = TRUE WHERE id = $1`, bookID); err != nil {
			return &db.StorageError{Op: "mark book available", Err: err}
		}
		return nil
	})
	if err != nil {
		span.SetAttributes(attribute.String("return.outcome", err.Error()))
		return err
	}

	span.SetAttributes(attribute.Bool("return.success", true))
	return nil
}

// lockBookRow takes a row lock on the book and reports its availability.
func lockBookRow(ctx context.Context, tx *sqlx.Tx, bookID uuid.UUID) (bool, error) {
	var available bool
	query := `SELECT available FROM books WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &available, query, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrBookNotFound
		}
		return false, &db.StorageError{Op: "lock book row", Err: err}
	}
	return available, nil
}

// ActiveFor lists the user's open loans, most recent first.
func (s *service) ActiveFor(ctx context.Context, userID uuid.UUID) ([]*BorrowedBook, error) {
	loans := []*BorrowedBook{}
	query := `
		SELECT b.id AS book_id, b.title, b.author, bb.borrowed_at, bb.returned_at
		FROM borrowed_books bb
		JOIN books b ON bb.book_id = b.id
		WHERE bb.user_id = $1 AND bb.returned_at IS NULL
		ORDER BY bb.borrowed_at DESC
	`
	if err := s.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, &db.StorageError{Op: "list active borrows", Err: err}
	}
	return loans, nil
}

// HistoryFor lists the user's full ledger, returned records included,
// most recent first.
func (s *service) HistoryFor(ctx context.Context, userID uuid.UUID) ([]*BorrowedBook, error) {
	loans := []*BorrowedBook{}
	query := `
		SELECT b.id AS book_id, b.title, b.author, bb.borrowed_at, bb.returned_at
		FROM borrowed_books bb
		JOIN books b ON bb.book_id = b.id
		WHERE bb.user_id = $1
		ORDER BY bb.borrowed_at DESC
	`
	if err := s.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, &db.StorageError{Op: "list borrow history", Err: err}
	}
	return loans, nil
}
