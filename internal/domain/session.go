package domain

import "time"

// Session is a server-side login session. The ID doubles as the opaque
// token carried by the session cookie: 256 bits of randomness, hex encoded.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its expiry instant.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
