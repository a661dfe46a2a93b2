// Package history is the client's local mirror of saved journal entries.
// It is not authoritative and is never reconciled with the server.
package history

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

type Repository interface {
	// Prepend records e as the newest entry.
	Prepend(ctx context.Context, e *models.Entry) error
	// Recent returns up to limit entries, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]models.Entry, error)
	Clear(ctx context.Context) error
}
