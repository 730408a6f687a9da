// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Domain failures the API surfaces as typed conditions. Expected
// relationship states (no mutual like yet, no messages yet, pending
// request) are never errors; these cover genuine rule violations.
var (
	ErrAlreadyMatched   = errors.New("pair is already matched")
	ErrDuplicateRequest = errors.New("message request already sent")
	ErrRequestPending   = errors.New("message request still pending")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSelfAction       = errors.New("cannot act on yourself")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Invalid wraps ErrInvalidArgument with a caller-facing message.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// Map converts domain/infra errors into an HTTP status + message pair.
// Keeps handlers clean by centralizing error mapping.
func Map(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""

	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrNotAuthenticated.Error()

	case errors.Is(err, ErrAlreadyMatched),
		errors.Is(err, ErrDuplicateRequest),
		errors.Is(err, ErrRequestPending):
		return http.StatusConflict, err.Error()

	case errors.Is(err, ErrSelfAction),
		errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "record not found"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"

	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, "request was canceled"

	default:
		// fallback → bubble up error message for debugging
		return http.StatusInternalServerError, err.Error()
	}
}
