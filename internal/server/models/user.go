// Package models holds the records persisted by the server.
package models

import "time"

// User is a registered account. Email is the identity key and is unique.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
