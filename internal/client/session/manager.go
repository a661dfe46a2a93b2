package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/client/client"
	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
	"github.com/dmitrijs2005/moodjournal/internal/client/stats"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

var (
	ErrSubmitInFlight   = errors.New("a submission is already in progress")
	ErrEmptyEntry       = errors.New("entry text is empty")
	ErrNoMood           = errors.New("no mood selected")
	ErrUnknownMood      = errors.New("unknown mood")
	ErrNotAuthenticated = errors.New("not logged in")
)

// DateLayout formats the entry date the way the browser client did.
const DateLayout = "1/2/2006, 3:04:05 PM"

const (
	msgEmptyEntry     = "📝 Please write something."
	msgNoMood         = "😊 Please select a mood first."
	msgSessionExpired = "⚠️ Session expired. Please log in again."
	msgThinking       = "💬 Thinking..."
	msgSaved          = "📝 Entry saved!"
	msgLoggedIn       = "✅ Login successful!"
	msgLoggedOut      = "👋 Logged out!"
	msgReflectFailed  = "❌ Could not get a reflection. Please try again."
	msgSaveFailed     = "❌ Entry could not be saved. Reflect again to retry."
	msgUnavailable    = "❌ Server unavailable. Please try again later."
	msgInternal       = "❌ Internal client error. Please try again later."
)

// Manager owns the session token (through AuthService), the selected mood
// and the submission state. Submit is single flight.
type Manager struct {
	mu    sync.Mutex
	state State
	mood  string

	view     View
	auth     services.AuthService
	journal  services.JournalService
	settings services.SettingsService
	logger   logging.Logger

	now  func() time.Time
	pick func(n int) int
}

func NewManager(v View, a services.AuthService, j services.JournalService, s services.SettingsService, l logging.Logger) *Manager {
	return &Manager{
		view:     v,
		auth:     a,
		journal:  j,
		settings: s,
		logger:   l.With("module", "session"),
		now:      time.Now,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Mood() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mood
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	m.view.RenderState(s)
}

// LoggedIn reports whether a token is stored.
func (m *Manager) LoggedIn(ctx context.Context) bool {
	token, err := m.auth.Token(ctx)
	return err == nil && token != ""
}

// Load applies the saved theme and, when a token is present, renders the
// local history and stats. Without a token nothing is rendered and the
// view is sent to login.
func (m *Manager) Load(ctx context.Context) error {
	dark, err := m.settings.DarkMode(ctx)
	if err != nil {
		m.logger.Warn(ctx, "read theme", "error", err)
	}
	m.view.ApplyTheme(dark)

	return m.Refresh(ctx)
}

// Refresh re-renders history and stats from the local mirror.
func (m *Manager) Refresh(ctx context.Context) error {
	if !m.LoggedIn(ctx) {
		m.view.RedirectToLogin()
		return ErrNotAuthenticated
	}

	if err := m.render(ctx); err != nil {
		m.view.ShowError(msgInternal)
		return err
	}
	return nil
}

// render draws history and stats without reporting failures to the view.
func (m *Manager) render(ctx context.Context) error {
	entries, err := m.journal.History(ctx)
	if err != nil {
		return err
	}

	m.view.RenderHistory(entries)
	m.view.RenderStats(stats.Summarize(entries))
	return nil
}

// Login authenticates and, on success, moves the view to the main screen.
// Failures are shown inline and never retried.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.auth.Login(ctx, email, password); err != nil {
		m.view.ShowError("❌ " + authMessage(err, "Login failed."))
		return err
	}

	m.view.ShowMessage(msgLoggedIn)
	m.view.NavigateToMain()
	return m.Refresh(ctx)
}

func (m *Manager) Signup(ctx context.Context, email, password string) error {
	if err := m.auth.Signup(ctx, email, password); err != nil {
		m.view.ShowError("❌ " + authMessage(err, "Signup failed."))
		return err
	}
	m.view.ShowMessage("✅ Signup successful! Please log in.")
	return nil
}

func (m *Manager) Register(ctx context.Context, username, password string) error {
	if err := m.auth.Register(ctx, username, password); err != nil {
		m.view.ShowError("❌ " + authMessage(err, "Registration failed."))
		return err
	}
	m.view.ShowMessage("✅ User registered successfully! Please log in.")
	return nil
}

// Logout discards the token and returns to the login screen.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.auth.Logout(ctx); err != nil {
		m.view.ShowError(msgInternal)
		return err
	}
	m.view.ShowMessage(msgLoggedOut)
	m.view.RedirectToLogin()
	return nil
}

func (m *Manager) SelectMood(mood string) error {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if !stats.IsKnownMood(mood) {
		return ErrUnknownMood
	}
	m.mu.Lock()
	m.mood = mood
	m.mu.Unlock()
	return nil
}

// Submit runs the reflect-and-save flow for text with the selected mood.
// Precondition failures return before any network call and leave the
// state unchanged. A second Submit while one is running returns
// ErrSubmitInFlight.
func (m *Manager) Submit(ctx context.Context, text, trigger string) error {
	token, tokenErr := m.auth.Token(ctx)
	text = strings.TrimSpace(text)

	m.mu.Lock()
	if m.state.InFlight() {
		m.mu.Unlock()
		return ErrSubmitInFlight
	}
	mood := m.mood
	var precondition error
	switch {
	case text == "":
		precondition = ErrEmptyEntry
	case mood == "":
		precondition = ErrNoMood
	case tokenErr != nil:
		precondition = tokenErr
	case token == "":
		precondition = ErrNotAuthenticated
	default:
		m.state = Submitting
	}
	m.mu.Unlock()

	switch {
	case precondition == nil:
	case errors.Is(precondition, ErrEmptyEntry):
		m.view.ShowError(msgEmptyEntry)
		return precondition
	case errors.Is(precondition, ErrNoMood):
		m.view.ShowError(msgNoMood)
		return precondition
	case errors.Is(precondition, ErrNotAuthenticated):
		if lerr := m.auth.Logout(ctx); lerr != nil {
			m.logger.Warn(ctx, "clearing rejected token failed", "error", lerr)
		}
		m.view.ShowError(msgSessionExpired)
		m.view.RedirectToLogin()
		return precondition
	default:
		m.view.ShowError(msgInternal)
		return precondition
	}

	m.view.RenderState(Submitting)
	m.view.SetSubmitEnabled(false)

	history, err := m.journal.History(ctx)
	if err != nil {
		return m.fail(ctx, err, msgInternal)
	}
	memory := BuildMemoryContext(history)

	m.setState(AwaitingReflection)
	m.view.ShowMessage(msgThinking)

	reflection, err := m.journal.Reflect(ctx, token, text, mood, memory)
	if err != nil {
		return m.fail(ctx, err, msgReflectFailed)
	}
	m.view.ShowReflection(reflection)

	m.setState(AwaitingSave)

	entry := &models.Entry{
		Content:  text,
		Mood:     mood,
		Trigger:  strings.TrimSpace(trigger),
		Response: reflection,
		Date:     m.now().Format(DateLayout),
	}
	if err := m.journal.Save(ctx, token, entry); err != nil {
		return m.fail(ctx, err, msgSaveFailed)
	}

	m.view.ShowMessage(msgSaved)

	m.mu.Lock()
	m.mood = ""
	m.mu.Unlock()

	// the entry is saved; a stale local view is only logged
	if err := m.render(ctx); err != nil {
		m.logger.Warn(ctx, "refresh after save", "error", err)
	}

	m.setState(Idle)
	m.view.SetSubmitEnabled(true)
	return nil
}

// fail moves to Error, reports err and re-enables input. Nothing is retried.
func (m *Manager) fail(ctx context.Context, err error, fallback string) error {
	m.logger.Warn(ctx, "submission failed", "error", err)

	m.setState(Error)
	switch {
	case errors.Is(err, client.ErrUnauthenticated), errors.Is(err, client.ErrForbidden):
		if lerr := m.auth.Logout(ctx); lerr != nil {
			m.logger.Warn(ctx, "clearing rejected token failed", "error", lerr)
		}
		m.view.ShowError(msgSessionExpired)
		m.view.RedirectToLogin()
	case errors.Is(err, client.ErrUnavailable):
		m.view.ShowError(msgUnavailable)
	default:
		m.view.ShowError(fallback)
	}
	m.view.SetSubmitEnabled(true)
	return err
}

// Calm shows one calming message.
func (m *Manager) Calm() string {
	msg := stats.CalmingMessage(m.pick)
	m.view.ShowMessage(msg)
	return msg
}

// ToggleTheme flips and persists the dark-mode preference.
func (m *Manager) ToggleTheme(ctx context.Context) (bool, error) {
	dark, err := m.settings.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	dark = !dark
	if err := m.settings.SetDarkMode(ctx, dark); err != nil {
		return false, err
	}
	m.view.ApplyTheme(dark)
	return dark, nil
}

// authMessage prefers the server's message, then known local causes.
func authMessage(err error, fallback string) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, services.ErrMissingCredentials):
		return "Please enter both fields."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable."
	default:
		return fallback
	}
}
