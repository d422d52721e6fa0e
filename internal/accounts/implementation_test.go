package accounts_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spoorthi225f2/Library/internal/accounts"
	"github.com/spoorthi225f2/Library/internal/platform/dbtest"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	database := dbtest.Setup(t)
	svc := accounts.NewService(database)
	ctx := context.Background()

	user, err := svc.Register(ctx, "meera", "secret123", accounts.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "meera", user.Username)
	assert.Equal(t, accounts.RoleMember, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)

	authed, err := svc.Authenticate(ctx, "meera", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "meera", "wrong-password")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	database := dbtest.Setup(t)
	svc := accounts.NewService(database)
	ctx := context.Background()

	_, err := svc.Register(ctx, "meera", "secret123", accounts.RoleMember)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "meera", "different456", accounts.RoleMember)
	assert.ErrorIs(t, err, accounts.ErrDuplicateUsername)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM users WHERE username = 'meera'`))
	assert.Equal(t, 1, count, "failed registration must not create a row")
}

func TestRegisterValidation(t *testing.T) {
	database := dbtest.Setup(t)
	svc := accounts.NewService(database)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret123", accounts.RoleMember)
	assert.ErrorIs(t, err, accounts.ErrValidation)

	_, err = svc.Register(ctx, "meera", "short", accounts.RoleMember)
	assert.ErrorIs(t, err, accounts.ErrValidation)

	_, err = svc.Register(ctx, "meera", "secret123", "librarian")
	assert.ErrorIs(t, err, accounts.ErrValidation)
}

func TestFindByIDAndUsername(t *testing.T) {
	database := dbtest.Setup(t)
	svc := accounts.NewService(database)
	ctx := context.Background()

	user, err := svc.Register(ctx, "arjun", "secret123", accounts.RoleMember)
	require.NoError(t, err)

	byID, err := svc.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "arjun", byID.Username)

	byName, err := svc.FindByUsername(ctx, "arjun")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = svc.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	_, err = svc.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}
