// Package session drives the client's user-facing flows (login, logout,
// reflect-and-save) as an explicit state machine rendered through View.
package session

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/stats"
	"github.com/dmitrijs2005/moodjournal/internal/common"
)

// State of the reflect-and-save flow.
type State int

const (
	Idle State = iota
	Submitting
	AwaitingReflection
	AwaitingSave
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case AwaitingReflection:
		return "awaiting reflection"
	case AwaitingSave:
		return "awaiting save"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// InFlight reports whether a submission is running in state s.
func (s State) InFlight() bool {
	return s == Submitting || s == AwaitingReflection || s == AwaitingSave
}

// View renders the session. Implementations must not call back into the
// Manager from these methods.
type View interface {
	RenderState(s State)
	SetSubmitEnabled(enabled bool)
	ShowMessage(msg string)
	ShowError(msg string)
	ShowReflection(text string)
	RenderHistory(entries []models.Entry)
	RenderStats(summary stats.Summary)
	ApplyTheme(dark bool)
	NavigateToMain()
	RedirectToLogin()
}

// BuildMemoryContext renders up to common.MemoryContextLimit of the newest
// entries, one per line.
func BuildMemoryContext(newestFirst []models.Entry) string {
	n := min(len(newestFirst), common.MemoryContextLimit)

	lines := make([]string, 0, n)
	for _, e := range newestFirst[:n] {
		lines = append(lines, fmt.Sprintf("On %s, you wrote: \"%s\" (Mood: %s)", e.Date, e.Content, e.Mood))
	}
	return strings.Join(lines, "\n")
}
