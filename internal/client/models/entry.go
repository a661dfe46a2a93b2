// Package models holds the client-side view of journal entries.
package models

// Entry is a journal entry as the client keeps it in its local history
// mirror. RemoteID is the server id returned by save-entry.
type Entry struct {
	RemoteID string
	Content  string
	Mood     string
	Trigger  string
	Response string
	Date     string
}
