// Package client talks to the MoodJournal HTTP API and bootstraps the
// client's local SQLite store.
package client
