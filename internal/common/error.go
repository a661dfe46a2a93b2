// Package common defines constants and sentinel errors shared by the
// MoodJournal server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")
	ErrorPersistence  = errors.New("persistence error")
	ErrorUpstream     = errors.New("upstream error")

	// Token errors. A missing token is reported separately from a token that
	// was presented but could not be trusted.
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNoUserID     = errors.New("no user id in token")
)
