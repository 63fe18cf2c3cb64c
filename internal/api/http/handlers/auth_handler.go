package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/service"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// ticketsPath is where successful sign-in/sign-up form submissions land.
const ticketsPath = "/tickets"

// AuthHandler exposes sign-up, sign-in, and sign-out endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.CookieWriter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, session, err := h.auth.SignUp(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.Set(c, session.ID, session.ExpiresAt)

	if isFormRequest(c) {
		return c.Redirect(ticketsPath, fiber.StatusSeeOther)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, session, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.Set(c, session.ID, session.ExpiresAt)

	if isFormRequest(c) {
		return c.Redirect(ticketsPath, fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// SignOut handles POST /auth/sign-out. Signing out without a session is
// not an error; the caller ends up unauthenticated either way.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	if principal.Session != nil {
		if err := h.auth.SignOut(c.UserContext(), principal.Session.ID); err != nil {
			return err
		}
	}
	h.cookies.Clear(c)

	if isFormRequest(c) {
		return c.Redirect(auth.SignInPath, fiber.StatusSeeOther)
	}
	return c.SendStatus(http.StatusNoContent)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func isFormRequest(c *fiber.Ctx) bool {
	contentType := c.Get(fiber.HeaderContentType)
	return strings.Contains(contentType, fiber.MIMEApplicationForm) ||
		strings.Contains(contentType, fiber.MIMEMultipartForm)
}
