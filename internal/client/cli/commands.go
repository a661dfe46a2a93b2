package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/client/session"
	"github.com/dmitrijs2005/moodjournal/internal/client/stats"
)

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.manager.LoggedIn(ctx)
}

// askCredentials prompts for an identity and a hidden password.
func (a *App) askCredentials(prompt string) (string, string, error) {
	id, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", "", err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return id, pw, nil
}

func (a *App) Signup(ctx context.Context) error {
	email, pw, err := a.askCredentials("Enter email")
	if err != nil {
		return err
	}
	return a.manager.Signup(ctx, email, pw)
}

func (a *App) Register(ctx context.Context) error {
	username, pw, err := a.askCredentials("Enter user name")
	if err != nil {
		return err
	}
	return a.manager.Register(ctx, username, pw)
}

func (a *App) Login(ctx context.Context) error {
	email, pw, err := a.askCredentials("Enter email")
	if err != nil {
		return err
	}
	return a.manager.Login(ctx, email, pw)
}

func (a *App) Logout(ctx context.Context) error {
	return a.manager.Logout(ctx)
}

func moodPrompt() string {
	opts := make([]string, 0, len(stats.Moods))
	for i, m := range stats.Moods {
		opts = append(opts, fmt.Sprintf("%d) %s %s", i+1, stats.Emoji(m), m))
	}
	return "How do you feel? " + strings.Join(opts, "  ")
}

// parseMood accepts a mood name or its number in stats.Moods.
func parseMood(s string) string {
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(stats.Moods) {
		return stats.Moods[n-1]
	}
	return s
}

// Write collects an entry, a mood and an optional trigger, then submits.
func (a *App) Write(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Write your journal entry", a.out)
	if err != nil {
		return err
	}

	mood, err := GetSimpleText(a.reader, moodPrompt(), a.out)
	if err != nil {
		return err
	}
	if mood != "" {
		if err := a.manager.SelectMood(parseMood(mood)); err != nil {
			a.view.ShowError("😊 Please pick one of the listed moods.")
			return err
		}
	}

	trigger, err := GetSimpleText(a.reader, "What triggered it? (optional)", a.out)
	if err != nil {
		return err
	}

	return a.manager.Submit(ctx, text, trigger)
}

// History prints the local mirror, or the server copy with "history remote [n]".
func (a *App) History(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "remote" {
		return a.manager.Refresh(ctx)
	}

	limit := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			a.view.ShowError("Usage: history remote [limit]")
			return err
		}
		limit = n
	}

	token, err := a.auth.Token(ctx)
	if err != nil || token == "" {
		a.view.RedirectToLogin()
		return session.ErrNotAuthenticated
	}

	entries, err := a.journal.Remote(ctx, token, limit)
	if err != nil {
		a.view.ShowError("❌ " + err.Error())
		return err
	}
	a.view.RenderHistory(entries)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		a.view.RedirectToLogin()
		return session.ErrNotAuthenticated
	}
	entries, err := a.journal.History(ctx)
	if err != nil {
		return err
	}
	a.view.RenderStats(stats.Summarize(entries))
	return nil
}

func (a *App) Calm(ctx context.Context) error {
	a.manager.Calm()
	return nil
}

func (a *App) Theme(ctx context.Context) error {
	dark, err := a.manager.ToggleTheme(ctx)
	if err != nil {
		return err
	}
	if dark {
		a.view.ShowMessage("🌙 Dark mode on")
	} else {
		a.view.ShowMessage("☀️ Dark mode off")
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	screen, state, dark := a.view.Status()
	fmt.Fprintf(a.out, "screen: %s, state: %s, dark mode: %t, server: %s %s\n",
		screen, state, dark, a.config.ServerURL, a.getMode())
	return nil
}
