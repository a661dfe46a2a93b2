package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/client/client"
	"github.com/dmitrijs2005/moodjournal/internal/client/config"
	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/history"
	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	logger  logging.Logger
	auth    services.AuthService
	journal services.JournalService
	manager *session.Manager
	view    *TerminalView
	reader  *bufio.Reader
	out     io.Writer

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, logging.ParseLevel(c.LogLevel))

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	// no request timeout: a slow reflection blocks only the current command
	apiClient := client.NewHTTPClient(c.ServerURL, &http.Client{})

	meta := metadata.NewSQLiteRepository(db)
	as := services.NewAuthService(apiClient, meta, logger)
	js := services.NewJournalService(apiClient, history.NewSQLiteRepository(db), logger)
	ss := services.NewSettingsService(meta)

	view := NewTerminalView(os.Stdout)

	return &App{
		config:  c,
		db:      db,
		logger:  logger,
		auth:    as,
		journal: js,
		manager: session.NewManager(view, as, js, ss, logger),
		view:    view,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// Run loads the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.db.Close()

	fmt.Fprintln(a.out, "Welcome to MoodJournal (type 'help' for commands)")

	if err := a.manager.Load(ctx); err != nil {
		fmt.Fprintln(a.out, "You are not logged in. Type 'login' or 'signup'.")
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	screen, state, _ := a.view.Status()
	s := string(screen)
	if state != session.Idle {
		s += " " + state.String()
	}
	if mode := a.getMode(); mode != "" {
		s += " " + string(mode)
	}
	return fmt.Sprintf("(%s)", s)
}
