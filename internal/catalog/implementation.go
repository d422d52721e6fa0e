// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/spoorthi225f2/Library/internal/platform/db"
)

// service implements the Service interface.
type service struct {
	db *sqlx.DB
}

// NewService creates a new catalog service instance.
func NewService(database *sqlx.DB) Service {
	return &service{db: database}
}

// Create adds a new book to the catalog, available by default.
func (s *service) Create(ctx context.Context, title, author string) (*Book, error) {
	if title == "" || author == "" {
		return nil, fmt.Errorf("%w: title and author are required", ErrValidation)
	}

	book := &Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		Available: true,
	}

	query := `
		INSERT INTO books (id, title, author, available)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, book.ID, book.Title, book.Author, book.Available); err != nil {
		return nil, &db.StorageError{Op: "insert book", Err: err}
	}

	return book, nil
}

// Get retrieves a book by its ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Book, error) {
	book := &Book{}
	query := `SELECT id, title, author, available FROM books WHERE id = $1`
	if err := s.db.GetContext(ctx, book, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &db.StorageError{Op: "get book", Err: err}
	}
	return book, nil
}

// Update changes a book's title and author. Availability is never touched
// here; only the lending service mutates it.
func (s *service) Update(ctx context.Context, id uuid.UUID, title, author string) error {
	if title == "" || author == "" {
		return fmt.Errorf("%w: title and author are required", ErrValidation)
	}

	query := `UPDATE books SET title = $1, author = $2 WHERE id = $3`
	res, err := s.db.ExecContext(ctx, query, title, author, id)
	if err != nil {
		return &db.StorageError{Op: "update book", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &db.StorageError{Op: "update book rows affected", Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a book together with all of its ledger entries in one
// transaction. History is sacrificed so no orphaned references remain.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM borrowed_books WHERE book_id = $1`, id); err != nil {
			return &db.StorageError{Op: "delete ledger entries", Err: err}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return &db.StorageError{Op: "delete book", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &db.StorageError{Op: "delete book rows affected", Err: err}
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListAll returns every book in the catalog.
func (s *service) ListAll(ctx context.Context) ([]*Book, error) {
	books := []*Book{}
	query := `SELECT id, title, author, available FROM books ORDER BY title, author`
	if err := s.db.SelectContext(ctx, &books, query); err != nil {
		return nil, &db.StorageError{Op: "list books", Err: err}
	}
	return books, nil
}

// ListAvailable returns only the books currently available to borrow.
func (s *service) ListAvailable(ctx context.Context) ([]*Book, error) {
	books := []*Book{}
	query := `SELECT id, title, author, available FROM books WHERE available ORDER BY title, author`
	if err := s.db.SelectContext(ctx, &books, query); err != nil {
		return nil, &db.StorageError{Op: "list available books", Err: err}
	}
	return books, nil
}
