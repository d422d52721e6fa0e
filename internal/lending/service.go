// internal/lending/service.go
package lending

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the lending service.
type Service interface {
	Borrow(ctx context.Context, userID, bookID uuid.UUID) (*BorrowRecord, error)
	Return(ctx context.Context, userID, bookID uuid.UUID) error
	ActiveFor(ctx context.Context, userID uuid.UUID) ([]*BorrowedBook, error)
	HistoryFor(ctx context.Context, userID uuid.UUID) ([]*BorrowedBook, error)
}
