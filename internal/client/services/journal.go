package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/client/client"
	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/history"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

// ErrInvalidReflection is returned when the reflect payload has no usable
// choices[0].message.content.
var ErrInvalidReflection = errors.New("invalid reflection response")

// JournalService performs the two independent calls of a submission and
// keeps the local history mirror.
type JournalService interface {
	Reflect(ctx context.Context, token, entry, mood, memoryContext string) (string, error)
	// Save persists e on the server and, on success, prepends it to the
	// local mirror with RemoteID set.
	Save(ctx context.Context, token string, e *models.Entry) error
	// History returns the local mirror, newest first.
	History(ctx context.Context) ([]models.Entry, error)
	// Remote lists entries stored on the server, newest first.
	Remote(ctx context.Context, token string, limit int) ([]models.Entry, error)
}

type journalService struct {
	client  client.Client
	history history.Repository
	logger  logging.Logger
}

func NewJournalService(c client.Client, h history.Repository, l logging.Logger) JournalService {
	return &journalService{client: c, history: h, logger: l.With("module", "journal_service")}
}

type completion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ReflectionText extracts choices[0].message.content from a provider payload.
func ReflectionText(payload []byte) (string, error) {
	var c completion
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidReflection, err)
	}
	if len(c.Choices) == 0 || c.Choices[0].Message.Content == "" {
		return "", ErrInvalidReflection
	}
	return c.Choices[0].Message.Content, nil
}

func (s *journalService) Reflect(ctx context.Context, token, entry, mood, memoryContext string) (string, error) {
	payload, err := s.client.Reflect(ctx, token, client.ReflectRequest{
		Entry:         entry,
		Mood:          mood,
		MemoryContext: memoryContext,
	})
	if err != nil {
		return "", err
	}
	return ReflectionText(payload)
}

func (s *journalService) Save(ctx context.Context, token string, e *models.Entry) error {
	req := client.SaveEntryRequest{
		Content:  e.Content,
		Mood:     e.Mood,
		Response: e.Response,
		Date:     e.Date,
	}
	if e.Trigger != "" {
		trigger := e.Trigger
		req.Trigger = &trigger
	}

	id, err := s.client.SaveEntry(ctx, token, req)
	if err != nil {
		return err
	}
	e.RemoteID = id

	// the server copy is authoritative; a mirror failure only costs local history
	if err := s.history.Prepend(ctx, e); err != nil {
		s.logger.Warn(ctx, "history mirror update failed", "id", id, "error", err)
	}

	return nil
}

func (s *journalService) History(ctx context.Context) ([]models.Entry, error) {
	return s.history.Recent(ctx, 0)
}

func (s *journalService) Remote(ctx context.Context, token string, limit int) ([]models.Entry, error) {
	items, err := s.client.ListEntries(ctx, token, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.Entry, 0, len(items))
	for _, it := range items {
		out = append(out, models.Entry{
			RemoteID: it.ID,
			Content:  it.Content,
			Mood:     it.Mood,
			Trigger:  it.Trigger,
			Response: it.Response,
			Date:     it.Date,
		})
	}
	return out, nil
}
