package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content" form:"content"`
}

// Validate returns a field-level validation error or nil.
func (r *CreateCommentRequest) Validate() error {
	details := map[string]any{}
	switch {
	case strings.TrimSpace(r.Content) == "":
		details["content"] = "Is required"
	case len(r.Content) > 1024:
		details["content"] = "Is too long"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid comment payload", details)
	}
	return nil
}

// CommentResponse is the public comment shape.
type CommentResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	IsOwner   bool      `json:"is_owner"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a domain comment for the given viewer.
func NewCommentResponse(comment *domain.Comment, viewerID string) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		IsOwner:   viewerID != "" && viewerID == comment.UserID,
		CreatedAt: comment.CreatedAt,
	}
}
