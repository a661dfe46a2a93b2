package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
	"github.com/dmitrijs2005/moodjournal/internal/client/stats"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
)

// Screen is where the terminal currently is.
type Screen string

const (
	ScreenLogin Screen = "login"
	ScreenMain  Screen = "main"
)

// TerminalView renders the session as plain text. In dark mode accents are
// coloured with ANSI escapes.
type TerminalView struct {
	mu            sync.Mutex
	out           io.Writer
	dark          bool
	submitEnabled bool
	state         session.State
	screen        Screen
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out, submitEnabled: true, screen: ScreenLogin}
}

func (v *TerminalView) paint(color, s string) string {
	if !v.dark {
		return s
	}
	return color + s + ansiReset
}

func (v *TerminalView) println(s string) {
	fmt.Fprintln(v.out, s)
}

func (v *TerminalView) RenderState(s session.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
}

func (v *TerminalView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitEnabled = enabled
	if !enabled {
		v.println(v.paint(ansiYellow, "Reflecting..."))
	}
}

func (v *TerminalView) ShowMessage(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(msg)
}

func (v *TerminalView) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(v.paint(ansiRed, msg))
}

func (v *TerminalView) ShowReflection(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(v.paint(ansiCyan, "🧠 AI Memory Companion"))
	v.println(text)
	v.println("")
}

func (v *TerminalView) RenderHistory(entries []models.Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(entries) == 0 {
		v.println("No entries yet.")
		return
	}
	for _, e := range entries {
		v.println(formatEntry(e))
	}
}

func formatEntry(e models.Entry) string {
	var b strings.Builder

	content := e.Content
	if content == "" {
		content = "(No content)"
	}
	response := e.Response
	if response == "" {
		response = "(No AI response)"
	}

	fmt.Fprintf(&b, "Feeling: %s %s\n", stats.Emoji(e.Mood), stats.Capitalize(e.Mood))
	fmt.Fprintf(&b, "🕒 %s\n", e.Date)
	fmt.Fprintf(&b, "✍️ %s\n", content)
	fmt.Fprintf(&b, "AI: %s\n", response)
	if e.Trigger != "" {
		fmt.Fprintf(&b, "🔍 Trigger: %s\n", e.Trigger)
	}
	return b.String()
}

func (v *TerminalView) RenderStats(summary stats.Summary) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.println("Mood chart")
	for _, m := range summary.Moods {
		v.println(fmt.Sprintf("  %s %-8s %s %d", stats.Emoji(m.Mood), stats.Capitalize(m.Mood), strings.Repeat("█", m.Count), m.Count))
	}

	v.println("🔥 Common Triggers")
	for _, t := range summary.Triggers {
		v.println(fmt.Sprintf("  %s (%d)", t.Trigger, t.Count))
	}
}

func (v *TerminalView) ApplyTheme(dark bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dark = dark
}

func (v *TerminalView) NavigateToMain() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screen = ScreenMain
}

func (v *TerminalView) RedirectToLogin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.screen != ScreenLogin {
		v.println("Please log in (type 'login').")
	}
	v.screen = ScreenLogin
}

// Status describes the view for the prompt.
func (v *TerminalView) Status() (Screen, session.State, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screen, v.state, v.dark
}

func (v *TerminalView) SubmitEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitEnabled
}
