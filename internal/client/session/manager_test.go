package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/client/client"
	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	view     *recordingView
	auth     *fakeAuth
	journal  *fakeJournal
	settings *fakeSettings
	m        *Manager
}

func newHarness(token string) *harness {
	h := &harness{
		view:     newRecordingView(),
		auth:     &fakeAuth{token: token},
		journal:  &fakeJournal{reflection: "be gentle with yourself"},
		settings: &fakeSettings{},
	}
	h.m = NewManager(h.view, h.auth, h.journal, h.settings, logging.Discard())
	h.m.now = func() time.Time { return time.Date(2024, 5, 1, 21, 5, 9, 0, time.UTC) }
	return h
}

func TestSubmit_HappyPath(t *testing.T) {
	h := newHarness("tok")
	ctx := context.Background()

	require.NoError(t, h.m.SelectMood("Happy"))
	require.NoError(t, h.m.Submit(ctx, "  Felt good today  ", " sun "))

	assert.Equal(t, []State{Submitting, AwaitingReflection, AwaitingSave, Idle}, h.view.states)
	assert.Equal(t, Idle, h.m.State())
	assert.True(t, h.view.enabled)
	assert.Empty(t, h.m.Mood(), "mood selection is cleared after a save")

	require.Len(t, h.journal.history, 1)
	saved := h.journal.history[0]
	assert.Equal(t, models.Entry{
		RemoteID: "e-1",
		Content:  "Felt good today",
		Mood:     "happy",
		Trigger:  "sun",
		Response: "be gentle with yourself",
		Date:     "5/1/2024, 9:05:09 PM",
	}, saved)

	assert.True(t, h.view.has("reflection:be gentle with yourself"))
	assert.True(t, h.view.has("history:1"))
	assert.Equal(t, 1, h.view.summary.Moods[0].Count)
	assert.Equal(t, "tok", h.journal.lastToken)
}

func TestSubmit_PreconditionsFailFast(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		mood    string
		text    string
		wantErr error
		wantEv  string
	}{
		{name: "empty text", token: "tok", mood: "sad", text: "   ", wantErr: ErrEmptyEntry, wantEv: "err:" + msgEmptyEntry},
		{name: "no mood", token: "tok", text: "hello", wantErr: ErrNoMood, wantEv: "err:" + msgNoMood},
		{name: "no token", mood: "sad", text: "hello", wantErr: ErrNotAuthenticated, wantEv: "login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.token)
			if tt.mood != "" {
				require.NoError(t, h.m.SelectMood(tt.mood))
			}

			err := h.m.Submit(context.Background(), tt.text, "")

			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, h.view.has(tt.wantEv), h.view.events)
			assert.Equal(t, 0, h.journal.reflectCalls)
			assert.Equal(t, Idle, h.m.State())
			assert.Empty(t, h.view.states)
		})
	}
}

func TestSubmit_ReflectionFailureNothingPersisted(t *testing.T) {
	h := newHarness("tok")
	h.journal.reflectErr = errors.New("invalid reflection response")
	ctx := context.Background()

	require.NoError(t, h.m.SelectMood("sad"))
	err := h.m.Submit(ctx, "I'm tired", "")

	require.Error(t, err)
	assert.Equal(t, Error, h.m.State())
	assert.Equal(t, []State{Submitting, AwaitingReflection, Error}, h.view.states)
	assert.Equal(t, 0, h.journal.saveCalls)
	assert.True(t, h.view.enabled)
	assert.True(t, h.view.has("err:"+msgReflectFailed))
	assert.Equal(t, "sad", h.m.Mood(), "selection survives a failure so the user can retry")
}

func TestSubmit_SaveFailureDiscardsReflection(t *testing.T) {
	h := newHarness("tok")
	h.journal.saveErr = client.ErrServer
	ctx := context.Background()

	require.NoError(t, h.m.SelectMood("sad"))
	err := h.m.Submit(ctx, "I'm tired", "")

	require.ErrorIs(t, err, client.ErrServer)
	assert.Equal(t, []State{Submitting, AwaitingReflection, AwaitingSave, Error}, h.view.states)
	assert.Equal(t, 1, h.journal.saveCalls, "save is not retried")
	assert.Empty(t, h.journal.history)
	assert.True(t, h.view.has("err:"+msgSaveFailed))

	// the next submit starts over from Error
	h.journal.saveErr = nil
	require.NoError(t, h.m.Submit(ctx, "I'm tired", ""))
	assert.Equal(t, Idle, h.m.State())
	assert.Equal(t, 2, h.journal.reflectCalls)
}

func TestSubmit_RejectedTokenRedirectsToLogin(t *testing.T) {
	for _, rejection := range []error{client.ErrForbidden, client.ErrUnauthenticated} {
		h := newHarness("expired")
		h.journal.reflectErr = rejection

		require.NoError(t, h.m.SelectMood("angry"))
		err := h.m.Submit(context.Background(), "ugh", "")

		require.ErrorIs(t, err, rejection)
		assert.True(t, h.view.has("err:"+msgSessionExpired))
		assert.True(t, h.view.has("login"))
		assert.Empty(t, h.auth.token)
		assert.False(t, h.m.LoggedIn(context.Background()))
	}
}

func TestSubmit_LocalRefreshFailureAfterSave(t *testing.T) {
	h := newHarness("tok")
	// first History call builds the memory context, the second re-renders
	h.journal.failHistoryFrom = 2
	require.NoError(t, h.m.SelectMood("happy"))

	require.NoError(t, h.m.Submit(context.Background(), "sunny day", ""))

	assert.Equal(t, Idle, h.m.State())
	assert.Equal(t, 1, h.journal.saveCalls)
	assert.True(t, h.view.has("msg:"+msgSaved))
	assert.False(t, h.view.has("err:"+msgInternal))
}

func TestSubmit_SingleFlight(t *testing.T) {
	h := newHarness("tok")
	h.journal.block = make(chan struct{})
	ctx := context.Background()
	require.NoError(t, h.m.SelectMood("neutral"))

	done := make(chan error, 1)
	go func() { done <- h.m.Submit(ctx, "first", "") }()

	require.Eventually(t, func() bool { return h.m.State() == AwaitingReflection }, time.Second, 5*time.Millisecond)
	assert.False(t, h.view.enabled)

	err := h.m.Submit(ctx, "second", "")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(h.journal.block)
	require.NoError(t, <-done)

	assert.Equal(t, 1, h.journal.reflectCalls)
	assert.Equal(t, 1, h.journal.saveCalls)
}

func TestSubmit_MemoryContextUsesFiveNewest(t *testing.T) {
	h := newHarness("tok")
	for i := 7; i >= 1; i-- {
		h.journal.history = append(h.journal.history, models.Entry{
			Content: fmt.Sprintf("entry %d", i), Mood: "sad", Date: fmt.Sprintf("day %d", i),
		})
	}
	require.NoError(t, h.m.SelectMood("sad"))
	require.NoError(t, h.m.Submit(context.Background(), "today", ""))

	lines := strings.Split(h.journal.lastMemory, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `On day 7, you wrote: "entry 7" (Mood: sad)`, lines[0])
	assert.Equal(t, `On day 3, you wrote: "entry 3" (Mood: sad)`, lines[4])
}

func TestBuildMemoryContext(t *testing.T) {
	assert.Empty(t, BuildMemoryContext(nil))
	assert.Equal(t,
		`On 5/1/2024, you wrote: "a "quoted" word" (Mood: happy)`,
		BuildMemoryContext([]models.Entry{{Content: `a "quoted" word`, Mood: "happy", Date: "5/1/2024"}}),
	)
}

func TestLoad_UnauthenticatedGuard(t *testing.T) {
	h := newHarness("")
	h.journal.history = []models.Entry{{Content: "secret", Mood: "sad"}}
	h.settings.dark = true

	err := h.m.Load(context.Background())

	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.True(t, h.view.dark)
	assert.True(t, h.view.has("login"))
	assert.Nil(t, h.view.history, "no entries are rendered without a token")
}

func TestLoad_RendersHistory(t *testing.T) {
	h := newHarness("tok")
	h.journal.history = []models.Entry{{Content: "a", Mood: "sad", Trigger: "work"}}

	require.NoError(t, h.m.Load(context.Background()))
	assert.Len(t, h.view.history, 1)
	require.Len(t, h.view.summary.Triggers, 1)
	assert.Equal(t, "work", h.view.summary.Triggers[0].Trigger)
}

func TestLoginAndLogout(t *testing.T) {
	h := newHarness("")
	ctx := context.Background()

	require.NoError(t, h.m.Login(ctx, "a@x.io", "pw"))
	assert.True(t, h.view.has("msg:"+msgLoggedIn))
	assert.True(t, h.view.has("main"))
	assert.True(t, h.m.LoggedIn(ctx))

	require.NoError(t, h.m.Logout(ctx))
	assert.False(t, h.m.LoggedIn(ctx))
	assert.True(t, h.view.has("login"))
}

func TestLogin_FailureShownInline(t *testing.T) {
	h := newHarness("")
	h.auth.loginErr = &client.APIError{StatusCode: 401, Code: "unauthorized", Message: "Invalid credentials"}

	err := h.m.Login(context.Background(), "a@x.io", "wrong")

	require.Error(t, err)
	assert.True(t, h.view.has("err:❌ Invalid credentials"))
	assert.False(t, h.view.has("main"))
}

func TestSelectMood_Unknown(t *testing.T) {
	h := newHarness("tok")
	assert.ErrorIs(t, h.m.SelectMood("bored"), ErrUnknownMood)
	assert.Empty(t, h.m.Mood())
}

func TestToggleThemeAndCalm(t *testing.T) {
	h := newHarness("tok")
	ctx := context.Background()

	dark, err := h.m.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, h.settings.dark)
	assert.True(t, h.view.dark)

	h.m.pick = func(int) int { return 2 }
	assert.Equal(t, "🫧 Breathe in calm, breathe out stress.", h.m.Calm())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting save", AwaitingSave.String())
	assert.True(t, AwaitingReflection.InFlight())
	assert.False(t, Error.InFlight())
}
