// Package auth supplies the current-user identity for every engine call:
// JWT session tokens, password hashing, and the gin middleware that
// resolves the viewer id. No valid session means every operation fails
// fast with a not-authenticated error.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/amoryapp/amory-backend/internal/config"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

// Sessions issues and verifies signed session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(cfg *config.Config) *Sessions {
	return &Sessions{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    cfg.Auth.TokenTTL,
	}
}

// Issue creates a session token for the user.
func (s *Sessions) Issue(userID uint64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a session token and returns the user id it carries.
// Any failure (bad signature, expiry, malformed subject) reports as
// not-authenticated; callers redirect to sign-in.
func (s *Sessions) Verify(tokenString string) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.ErrNotAuthenticated
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, apperr.ErrNotAuthenticated
	}
	return userID, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against its stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
