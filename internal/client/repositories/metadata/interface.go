// Package metadata stores client settings and the session token as
// key/value pairs in the local SQLite database.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken    = "token"
	KeyDarkMode = "dark_mode"
)

type Repository interface {
	// Get returns ("", false, nil) when key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
