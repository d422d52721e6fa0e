// internal/accounts/service.go
package accounts

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the accounts service.
type Service interface {
	Register(ctx context.Context, username, password, role string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
