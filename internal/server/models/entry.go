package models

import "time"

// Entry is one saved journal entry. Date is the display string chosen by the
// client; CreatedAt is the server-side insertion time used for ordering.
type Entry struct {
	ID        string
	UserID    string
	Content   string
	Mood      string
	Trigger   string
	Response  string
	Date      string
	CreatedAt time.Time
}
