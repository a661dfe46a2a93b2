package entries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query :=
		`INSERT INTO entries (id, user_id, content, mood, mood_trigger, response, entry_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	trigger := sql.NullString{String: entry.Trigger, Valid: entry.Trigger != ""}

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Content, entry.Mood, trigger, entry.Response, entry.Date,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Entry, error) {
	query :=
		`SELECT id, user_id, content, mood, mood_trigger, response, entry_date, created_at
		 FROM entries
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0, limit)
	for rows.Next() {
		var (
			item    models.Entry
			trigger sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.Content, &item.Mood, &trigger,
			&item.Response, &item.Date, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		item.Trigger = trigger.String
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
