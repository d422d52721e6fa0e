// internal/accounts/implementation.go
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/time/rate"

	"github.com/spoorthi225f2/Library/internal/platform/db"
)

// pqUniqueViolation is the Postgres error code for a unique constraint
// violation, raised when two registrations race on the same username.
const pqUniqueViolation = "23505"

// service implements the Service interface.
type service struct {
	db          *sqlx.DB
	rateLimiter *rate.Limiter
}

// NewService creates a new accounts service instance.
func NewService(database *sqlx.DB) Service {
	return &service{
		db:          database,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 30),
	}
}

// Register creates a new user with a salted credential hash. The username
// uniqueness check is left to the database constraint so concurrent
// registrations cannot both succeed.
func (s *service) Register(ctx context.Context, username, password, role string) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("%w: too many registration attempts", ErrValidation)
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if role != RoleAdmin && role != RoleMember {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	credentialHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:             uuid.New(),
		Username:       username,
		CredentialHash: credentialHash,
		Role:           role,
	}

	query := `
		INSERT INTO users (id, username, credential_hash, role)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Username, user.CredentialHash, user.Role); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, &db.StorageError{Op: "insert user", Err: err}
	}

	return user, nil
}

// Authenticate verifies a user's credentials and returns the user if
// successful. Unknown usernames and wrong passwords fail identically.
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("%w: too many login attempts", ErrValidation)
	}

	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := verifyPassword(password, user.CredentialHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindByID retrieves a user by their ID.
func (s *service) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := &User{}
	query := `SELECT id, username, credential_hash, role FROM users WHERE id = $1`
	if err := s.db.GetContext(ctx, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &db.StorageError{Op: "get user by id", Err: err}
	}
	return user, nil
}

// FindByUsername retrieves a user by their unique username.
func (s *service) FindByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	query := `SELECT id, username, credential_hash, role FROM users WHERE username = $1`
	if err := s.db.GetContext(ctx, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &db.StorageError{Op: "get user by username", Err: err}
	}
	return user, nil
}
