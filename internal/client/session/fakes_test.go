package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/stats"
)

// recordingView stores every call as a short event string.
type recordingView struct {
	mu      sync.Mutex
	events  []string
	states  []State
	history []models.Entry
	summary stats.Summary
	dark    bool
	enabled bool
}

func newRecordingView() *recordingView {
	return &recordingView{enabled: true}
}

func (v *recordingView) add(e string) {
	v.mu.Lock()
	v.events = append(v.events, e)
	v.mu.Unlock()
}

func (v *recordingView) RenderState(s State) {
	v.mu.Lock()
	v.states = append(v.states, s)
	v.mu.Unlock()
	v.add("state:" + s.String())
}

func (v *recordingView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	v.enabled = enabled
	v.mu.Unlock()
	v.add(fmt.Sprintf("submit:%t", enabled))
}

func (v *recordingView) ShowMessage(msg string)     { v.add("msg:" + msg) }
func (v *recordingView) ShowError(msg string)       { v.add("err:" + msg) }
func (v *recordingView) ShowReflection(text string) { v.add("reflection:" + text) }
func (v *recordingView) NavigateToMain()            { v.add("main") }
func (v *recordingView) RedirectToLogin()           { v.add("login") }

func (v *recordingView) RenderHistory(entries []models.Entry) {
	v.mu.Lock()
	v.history = entries
	v.mu.Unlock()
	v.add(fmt.Sprintf("history:%d", len(entries)))
}

func (v *recordingView) RenderStats(summary stats.Summary) {
	v.mu.Lock()
	v.summary = summary
	v.mu.Unlock()
	v.add("stats")
}

func (v *recordingView) ApplyTheme(dark bool) {
	v.mu.Lock()
	v.dark = dark
	v.mu.Unlock()
	v.add(fmt.Sprintf("theme:%t", dark))
}

func (v *recordingView) has(e string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, got := range v.events {
		if got == e {
			return true
		}
	}
	return false
}

type fakeAuth struct {
	token    string
	loginErr error
	tokenErr error
}

func (f *fakeAuth) Signup(ctx context.Context, email, password string) error     { return nil }
func (f *fakeAuth) Register(ctx context.Context, username, password string) error { return nil }
func (f *fakeAuth) Ping(ctx context.Context) error                                { return nil }

func (f *fakeAuth) Login(ctx context.Context, email, password string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "tok-" + email
	return nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.token = ""
	return nil
}

func (f *fakeAuth) Token(ctx context.Context) (string, error) {
	return f.token, f.tokenErr
}

type fakeJournal struct {
	mu      sync.Mutex
	history []models.Entry

	reflection string
	reflectErr error
	saveErr    error

	// block, when set, holds Reflect until it is closed.
	block chan struct{}

	// failHistoryFrom, when positive, fails History from that call on.
	failHistoryFrom int
	historyCalls    int

	reflectCalls int
	saveCalls    int
	lastMemory   string
	lastToken    string
}

func (f *fakeJournal) Reflect(ctx context.Context, token, entry, mood, memoryContext string) (string, error) {
	f.mu.Lock()
	f.reflectCalls++
	f.lastMemory = memoryContext
	f.lastToken = token
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.reflection, f.reflectErr
}

func (f *fakeJournal) Save(ctx context.Context, token string, e *models.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	e.RemoteID = fmt.Sprintf("e-%d", f.saveCalls)
	f.history = append([]models.Entry{*e}, f.history...)
	return nil
}

func (f *fakeJournal) History(ctx context.Context) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	if f.failHistoryFrom > 0 && f.historyCalls >= f.failHistoryFrom {
		return nil, errors.New("history unavailable")
	}
	return append([]models.Entry(nil), f.history...), nil
}

func (f *fakeJournal) Remote(ctx context.Context, token string, limit int) ([]models.Entry, error) {
	return nil, nil
}

type fakeSettings struct {
	dark bool
}

func (f *fakeSettings) DarkMode(ctx context.Context) (bool, error) { return f.dark, nil }
func (f *fakeSettings) SetDarkMode(ctx context.Context, on bool) error {
	f.dark = on
	return nil
}
