package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/ai"
	"github.com/dmitrijs2005/moodjournal/internal/server/metrics"
)

// SystemPrompt frames every reflection request.
const SystemPrompt = "You are a helpful AI memory companion journaling assistant."

// Completer is the language-model client used for reflections.
type Completer interface {
	Complete(ctx context.Context, messages []ai.Message) (*ai.Completion, error)
}

type ReflectRequest struct {
	Entry         string
	Mood          string
	MemoryContext string
}

// ReflectionService forwards a journal entry to the language model. It keeps
// no state and persists nothing.
type ReflectionService struct {
	completer Completer
	logger    logging.Logger
	metrics   *metrics.Metrics
}

func NewReflectionService(c Completer, l logging.Logger, m *metrics.Metrics) *ReflectionService {
	return &ReflectionService{
		completer: c,
		logger:    l.With("module", "reflection_service"),
		metrics:   m,
	}
}

// BuildMessages renders the system and user prompt for one reflection.
func BuildMessages(req ReflectRequest) []ai.Message {
	user := fmt.Sprintf("Here is my journal entry: \"%s\"\n\nMood: %s\n\nMemory:\n%s",
		req.Entry, req.Mood, req.MemoryContext)

	return []ai.Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: user},
	}
}

// Reflect validates req and returns the provider payload unchanged. Entry and
// mood are checked before any outbound call; provider failures surface as
// common.ErrorUpstream.
func (s *ReflectionService) Reflect(ctx context.Context, req ReflectRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Entry) == "" || strings.TrimSpace(req.Mood) == "" {
		s.metrics.Reflection(metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%w: missing journal entry or mood", common.ErrorValidation)
	}

	completion, err := s.completer.Complete(ctx, BuildMessages(req))
	if err != nil {
		s.metrics.Reflection(metrics.OutcomeUpstream)
		s.logger.Error(ctx, "reflection failed", "error", err)
		return nil, fmt.Errorf("%w: failed to fetch AI response", common.ErrorUpstream)
	}

	s.metrics.Reflection(metrics.OutcomeOK)
	s.logger.Debug(ctx, "reflection completed", "mood", req.Mood, "has_content", completion.Content != "")

	return completion.Raw, nil
}
