// Package cli provides the interactive MoodJournal terminal client.
//
// It wires configuration, the local SQLite store, the API client and the
// session manager, and runs a REPL whose TerminalView renders the session.
// Typical flow: log in, write an entry, pick a mood, read the reflection.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
