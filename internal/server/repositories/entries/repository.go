// Package entries is the journal entry store.
package entries

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

type Repository interface {
	// Create inserts entry as a new row; ID must be set by the caller.
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	// ListByUser returns up to limit entries of userID, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Entry, error)
}
