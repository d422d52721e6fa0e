package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	encoded, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, encoded, "$")

	ok, err := verifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsEveryHash(t *testing.T) {
	first, err := hashPassword("secret123")
	require.NoError(t, err)
	second, err := hashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := verifyPassword("whatever", "not-an-encoded-credential")
	assert.Error(t, err)

	_, err = verifyPassword("whatever", "!!!$???")
	assert.Error(t, err)
}

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	encoded, err := hashPassword("visible-secret")
	require.NoError(t, err)
	assert.False(t, strings.Contains(encoded, "visible-secret"))
}
