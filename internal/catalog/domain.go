// internal/catalog/domain.go
package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("book not found")
	ErrValidation = errors.New("validation failed")
)

// Book represents a catalog entry. The available flag is owned by the
// lending service; the catalog only reads it.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Available bool      `json:"available" db:"available"`
}
