package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/domain"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// SignInPath is where unauthenticated form submissions are redirected.
const SignInPath = "/auth/sign-in"

// Principal represents the resolved authentication state of a request.
// Both fields are nil for anonymous requests.
type Principal struct {
	User    *domain.User
	Session *domain.Session
}

// Authenticated reports whether a valid session backed the request.
func (p *Principal) Authenticated() bool {
	return p != nil && p.User != nil
}

// Middleware resolves the current user and session from the session
// cookie, once per request.
type Middleware struct {
	sessions *SessionManager
	cookies  *CookieWriter
	logger   *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions *SessionManager, cookies *CookieWriter, logger *zap.Logger) *Middleware {
	return &Middleware{sessions: sessions, cookies: cookies, logger: logger}
}

// Resolve loads the principal into request-scoped storage. It never fails
// the request: a missing, invalid, or expired session degrades to the
// anonymous principal, with the stale cookie cleared best-effort.
func (m *Middleware) Resolve(c *fiber.Ctx) error {
	principal := &Principal{}

	sessionID := m.cookies.Get(c)
	if sessionID != "" {
		session, user, err := m.sessions.Validate(c.UserContext(), sessionID)
		switch {
		case err != nil:
			m.logger.Warn("session validation failed", zap.Error(err))
			m.cookies.Clear(c)
		case session == nil:
			m.cookies.Clear(c)
		default:
			principal.User = user
			principal.Session = session
		}
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the request's resolved principal.
func PrincipalFromContext(c *fiber.Ctx) *Principal {
	val := c.Locals(principalKey)
	principal, ok := val.(*Principal)
	if !ok {
		return &Principal{}
	}
	return principal
}

// RequireUser guards mutation routes. Browser form submissions are
// redirected to the sign-in page; API callers get a 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFromContext(c).Authenticated() {
			return c.Next()
		}
		if isFormRequest(c) {
			return c.Redirect(SignInPath, fiber.StatusSeeOther)
		}
		return apperrors.NewUnauthorized("sign in required")
	}
}

func isFormRequest(c *fiber.Ctx) bool {
	contentType := c.Get(fiber.HeaderContentType)
	return strings.Contains(contentType, fiber.MIMEApplicationForm) ||
		strings.Contains(contentType, fiber.MIMEMultipartForm)
}
