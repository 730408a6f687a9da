package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoryapp/amory-backend/internal/auth"
	"github.com/amoryapp/amory-backend/internal/config"
	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

func newSessions(secret string, ttl time.Duration) *auth.Sessions {
	cfg := config.New()
	cfg.Auth.JWTSecret = secret
	cfg.Auth.TokenTTL = ttl
	return auth.NewSessions(cfg)
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	s := newSessions("test-secret", time.Hour)

	token, err := s.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := newSessions("secret-a", time.Hour)
	verifier := newSessions("secret-b", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
}

func TestVerifyExpiredToken(t *testing.T) {
	s := newSessions("test-secret", -time.Minute)

	token, err := s.Issue(42)
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)
}

func TestVerifyGarbageToken(t *testing.T) {
	s := newSessions("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := s.Verify(token)
		assert.ErrorIs(t, err, apperr.ErrNotAuthenticated, "token %q", token)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter22"))
	assert.False(t, auth.CheckPassword(hash, "hunter23"))
}
