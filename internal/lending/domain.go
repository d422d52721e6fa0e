// internal/lending/domain.go
package lending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBookNotFound signals a borrow attempt against an unknown book.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookUnavailable signals a borrow attempt while another borrow is
	// active. The ledger and catalog are left untouched.
	ErrBookUnavailable = errors.New("book is not available")
	// ErrNoActiveBorrow signals a return with no active record matching
	// both the user and the book. Never borrowed, borrowed by someone
	// else, and already returned all fail identically.
	ErrNoActiveBorrow = errors.New("no active borrow for this user and book")
)

// BorrowRecord is one ledger entry. A record is active while ReturnedAt
// is nil; ReturnedAt is set exactly once and never changed afterwards.
type BorrowRecord struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at" db:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" db:"returned_at"`
}

// BorrowedBook is the ledger joined with the catalog, as presented to a
// user browsing their loans.
type BorrowedBook struct {
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	Title      string     `json:"title" db:"title"`
	Author     string     `json:"author" db:"author"`
	BorrowedAt time.Time  `json:"borrowed_at" db:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" db:"returned_at"`
}
