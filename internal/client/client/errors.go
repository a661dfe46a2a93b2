package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthenticated means the request carried no token (HTTP 401).
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the token was rejected as invalid or expired (HTTP 403).
	ErrForbidden = errors.New("token rejected")
	// ErrInvalidCredentials is the login failure for unknown email or bad password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrBadRequest         = errors.New("bad request")
	ErrServer             = errors.New("server error")
)

// APIError is a non-2xx response decoded from the server's
// {"error","message"} envelope. Unwrap yields the matching sentinel above.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
