// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the catalog service.
type Service interface {
	Create(ctx context.Context, title, author string) (*Book, error)
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	Update(ctx context.Context, id uuid.UUID, title, author string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]*Book, error)
	ListAvailable(ctx context.Context) ([]*Book, error)
}
