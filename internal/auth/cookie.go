package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// CookieWriter reads and writes the HTTP-only session cookie.
type CookieWriter struct {
	secure bool
}

// NewCookieWriter builds the adapter. secure should be true in production
// so the cookie is only sent over TLS.
func NewCookieWriter(secure bool) *CookieWriter {
	return &CookieWriter{secure: secure}
}

// Set writes the session cookie; its expiry mirrors the session record's.
func (w *CookieWriter) Set(c *fiber.Ctx, sessionID string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Expires:  expiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Get returns the session token from the request, or "" when absent.
func (w *CookieWriter) Get(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}

// Clear expires the session cookie on the client.
func (w *CookieWriter) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
