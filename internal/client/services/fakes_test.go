package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/moodjournal/internal/client/client"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE history (
  seq          INTEGER PRIMARY KEY AUTOINCREMENT,
  remote_id    TEXT NOT NULL DEFAULT '',
  content      TEXT NOT NULL,
  mood         TEXT NOT NULL,
  mood_trigger TEXT NOT NULL DEFAULT '',
  response     TEXT NOT NULL DEFAULT '',
  date         TEXT NOT NULL DEFAULT ''
);`)
	require.NoError(t, err)
	return db
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	SignupErr   error
	RegisterErr error

	LoginToken string
	LoginErr   error

	ReflectRet json.RawMessage
	ReflectErr error

	SaveID  string
	SaveErr error
	Saved   []client.SaveEntryRequest

	ListRet []client.RemoteEntry
	ListErr error

	PingErr error

	calls []string
}

func (f *fakeClient) Signup(ctx context.Context, email, password string) error {
	f.calls = append(f.calls, "signup")
	return f.SignupErr
}

func (f *fakeClient) Register(ctx context.Context, username, password string) error {
	f.calls = append(f.calls, "register")
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.calls = append(f.calls, "login")
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Reflect(ctx context.Context, token string, req client.ReflectRequest) (json.RawMessage, error) {
	f.calls = append(f.calls, "reflect")
	return f.ReflectRet, f.ReflectErr
}

func (f *fakeClient) SaveEntry(ctx context.Context, token string, req client.SaveEntryRequest) (string, error) {
	f.calls = append(f.calls, "save")
	if f.SaveErr != nil {
		return "", f.SaveErr
	}
	f.Saved = append(f.Saved, req)
	return f.SaveID, nil
}

func (f *fakeClient) ListEntries(ctx context.Context, token string, limit int) ([]client.RemoteEntry, error) {
	f.calls = append(f.calls, "list")
	return f.ListRet, f.ListErr
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.calls = append(f.calls, "ping")
	return f.PingErr
}
