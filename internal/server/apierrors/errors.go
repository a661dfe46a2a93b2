// Package apierrors defines the JSON error contract of the HTTP API and maps
// service errors onto it.
package apierrors

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/moodjournal/internal/common"
)

// APIError is written to clients as {"error": Code, "message": Message}.
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy of e carrying message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{Code: e.Code, Message: message, StatusCode: e.StatusCode}
}

var (
	ErrBadRequest = &APIError{
		Code:       "bad_request",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrValidation = &APIError{
		Code:       "validation_error",
		Message:    "Missing required fields",
		StatusCode: http.StatusBadRequest,
	}

	// ErrUnauthenticated is returned when no token was presented at all.
	ErrUnauthenticated = &APIError{
		Code:       "unauthenticated",
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrUnauthorized is returned for bad credentials.
	ErrUnauthorized = &APIError{
		Code:       "unauthorized",
		Message:    "Invalid credentials",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrForbidden is returned for a token that was presented but rejected.
	ErrForbidden = &APIError{
		Code:       "forbidden",
		Message:    "Invalid or expired token",
		StatusCode: http.StatusForbidden,
	}

	ErrConflict = &APIError{
		Code:       "conflict",
		Message:    "User already exists",
		StatusCode: http.StatusConflict,
	}

	ErrUpstream = &APIError{
		Code:       "upstream_error",
		Message:    "Failed to fetch AI response",
		StatusCode: http.StatusInternalServerError,
	}

	ErrPersistence = &APIError{
		Code:       "persistence_error",
		Message:    "Failed to save entry",
		StatusCode: http.StatusInternalServerError,
	}

	ErrInternal = &APIError{
		Code:       "internal_error",
		Message:    "An internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
)

// FromError maps err onto the API contract. An *APIError anywhere in the
// chain is returned as is; unknown errors become ErrInternal so internal
// details never reach the client.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		return ErrValidation.WithMessage(err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return ErrConflict
	case errors.Is(err, common.ErrMissingToken):
		return ErrUnauthenticated
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrNoUserID):
		return ErrForbidden
	case errors.Is(err, common.ErrorUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, common.ErrorUpstream):
		return ErrUpstream
	case errors.Is(err, common.ErrorPersistence):
		return ErrPersistence
	default:
		return ErrInternal
	}
}
