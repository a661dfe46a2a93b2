package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/metrics"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/dmitrijs2005/moodjournal/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// SaveEntryRequest carries one entry to persist. UserID must come from a
// verified token, never from the request body.
type SaveEntryRequest struct {
	UserID   string
	Content  string
	Mood     string
	Trigger  string
	Response string
	Date     string
}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	metrics     *metrics.Metrics
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger, mt *metrics.Metrics) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "entry_service"),
		metrics:     mt,
	}
}

// Save stores req as a new entry under a fresh id. Saving the same request
// twice stores two entries.
//
// Errors: common.ErrorUnauthorized without an owner, common.ErrInvalidToken
// when the token's owner no longer exists, common.ErrorValidation for empty
// content, and common.ErrorPersistence when the store fails.
func (s *EntryService) Save(ctx context.Context, req SaveEntryRequest) (*models.Entry, error) {
	if req.UserID == "" {
		return nil, common.ErrorUnauthorized
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}

	entry := &models.Entry{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		Content:  req.Content,
		Mood:     req.Mood,
		Trigger:  strings.TrimSpace(req.Trigger),
		Response: req.Response,
		Date:     req.Date,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetUserByID(ctx, req.UserID); err != nil {
			return err
		}
		var err error
		entry, err = s.repomanager.Entries(tx).Create(ctx, entry)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "entry owner not found", "user_id", req.UserID)
			return nil, fmt.Errorf("%w: owner no longer exists", common.ErrInvalidToken)
		}
		s.logger.Error(ctx, "save entry failed", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("%w: failed to save entry", common.ErrorPersistence)
	}

	s.metrics.EntrySaved()
	s.logger.Info(ctx, "entry saved", "user_id", entry.UserID, "entry_id", entry.ID)

	return entry, nil
}

// ClampLimit maps a requested page size onto [1, MaxListLimit], using
// DefaultListLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// ListRecent returns the newest entries of userID.
func (s *EntryService) ListRecent(ctx context.Context, userID string, limit int) ([]*models.Entry, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}

	items, err := s.repomanager.Entries(s.db).ListByUser(ctx, userID, ClampLimit(limit))
	if err != nil {
		s.logger.Error(ctx, "list entries failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: failed to list entries", common.ErrorPersistence)
	}

	return items, nil
}
