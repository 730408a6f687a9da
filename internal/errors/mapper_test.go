package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperr "github.com/amoryapp/amory-backend/internal/errors"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"nil", nil, http.StatusOK},
		{"not authenticated", apperr.ErrNotAuthenticated, http.StatusUnauthorized},
		{"already matched", apperr.ErrAlreadyMatched, http.StatusConflict},
		{"duplicate request", apperr.ErrDuplicateRequest, http.StatusConflict},
		{"request pending", apperr.ErrRequestPending, http.StatusConflict},
		{"self action", apperr.ErrSelfAction, http.StatusBadRequest},
		{"invalid argument", apperr.Invalid("limit out of range"), http.StatusBadRequest},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading chat: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, http.StatusRequestTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := apperr.Map(tc.err)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestInvalidWrapsSentinel(t *testing.T) {
	err := apperr.Invalid("age must be at least 18")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "age must be at least 18")
}
