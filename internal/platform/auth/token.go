package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// Identity is the authenticated caller, as established by the session
// layer. Core services never read it from ambient state; handlers pass
// the relevant fields explicitly.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// IssueToken signs an HS256 JWT carrying the user's id, name and role.
func IssueToken(secret []byte, ident Identity, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      ident.UserID.String(),
		"username": ident.Username,
		"role":     ident.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry and recovers the identity.
// The algorithm is pinned to HS256.
func ParseToken(secret []byte, tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Username: username, Role: role}, nil
}
