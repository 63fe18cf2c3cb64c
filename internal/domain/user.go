package domain

import "time"

// User is the domain model for registered account holders. Accounts are
// created at sign-up and are immutable afterwards.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
