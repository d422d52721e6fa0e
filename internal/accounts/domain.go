package accounts

import (
	"errors"

	"github.com/google/uuid"
)

// Roles a user can hold. Role is assigned at registration and never
// changes afterwards.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("validation failed")
)

// User represents a registered account. CredentialHash is the opaque
// encoded salt+digest and never leaves the service boundary.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	CredentialHash string    `json:"-" db:"credential_hash"`
	Role           string    `json:"role" db:"role"`
}
