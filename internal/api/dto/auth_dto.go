package dto

import (
	"net/mail"
	"strings"
	"time"

	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

const fieldMaxLen = 191

// SignUpRequest payload for new accounts. Accepted as form or JSON body.
type SignUpRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// Validate returns a field-level validation error or nil.
func (r *SignUpRequest) Validate() error {
	details := map[string]any{}

	switch {
	case r.Username == "":
		details["username"] = "Is required"
	case len(r.Username) > fieldMaxLen:
		details["username"] = "Is too long"
	case strings.Contains(r.Username, " "):
		details["username"] = "Username cannot contain spaces"
	}

	validateEmail(r.Email, details)
	validatePassword(r.Password, details)

	if _, ok := details["password"]; !ok && r.Password != r.ConfirmPassword {
		details["confirmPassword"] = "Passwords do not match"
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid sign-up payload", details)
	}
	return nil
}

// SignInRequest payload for sign-in.
type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate returns a field-level validation error or nil.
func (r *SignInRequest) Validate() error {
	details := map[string]any{}
	validateEmail(r.Email, details)
	validatePassword(r.Password, details)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid sign-in payload", details)
	}
	return nil
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func validateEmail(email string, details map[string]any) {
	switch {
	case email == "":
		details["email"] = "Is required"
	case len(email) > fieldMaxLen:
		details["email"] = "Is too long"
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			details["email"] = "Is not a valid email"
		}
	}
}

func validatePassword(password string, details map[string]any) {
	switch {
	case len(password) < 6:
		details["password"] = "Must be at least 6 characters"
	case len(password) > fieldMaxLen:
		details["password"] = "Is too long"
	}
}
