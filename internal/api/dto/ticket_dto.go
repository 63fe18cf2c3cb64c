package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/pkg/util/currencyutil"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

var deadlinePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// UpsertTicketRequest payload for creating or editing a ticket. Bounty
// arrives as the decimal string users type ("4.99").
type UpsertTicketRequest struct {
	Title    string `json:"title" form:"title"`
	Content  string `json:"content" form:"content"`
	Deadline string `json:"deadline" form:"deadline"`
	Bounty   string `json:"bounty" form:"bounty"`
}

// Validate checks the payload and converts the bounty to integer cents.
func (r *UpsertTicketRequest) Validate() (int64, error) {
	details := map[string]any{}

	// validate the trimmed values; the stored ticket is trimmed too
	switch title := strings.TrimSpace(r.Title); {
	case title == "":
		details["title"] = "Is required"
	case len(title) > 191:
		details["title"] = "Is too long"
	}
	switch content := strings.TrimSpace(r.Content); {
	case content == "":
		details["content"] = "Is required"
	case len(content) > 1024:
		details["content"] = "Is too long"
	}
	if !deadlinePattern.MatchString(r.Deadline) {
		details["deadline"] = "Is required"
	}

	var bountyCents int64
	cents, err := currencyutil.ParseToCents(r.Bounty)
	if err != nil {
		details["bounty"] = "Must be a positive number"
	} else {
		bountyCents = cents
	}

	if len(details) > 0 {
		return 0, apperrors.NewValidationError("invalid ticket payload", details)
	}
	return bountyCents, nil
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// TicketResponse is the public ticket shape. Bounty carries both the
// stored cents and the formatted dollar string.
type TicketResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Title           string              `json:"title"`
	Content         string              `json:"content"`
	Status          domain.TicketStatus `json:"status"`
	Deadline        string              `json:"deadline"`
	Bounty          int64               `json:"bounty"`
	BountyFormatted string              `json:"bounty_formatted"`
	IsOwner         bool                `json:"is_owner"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// TicketListResponse is one page of tickets with pagination metadata.
type TicketListResponse struct {
	Items    []TicketResponse `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// NewTicketResponse maps a domain ticket for the given viewer.
func NewTicketResponse(ticket *domain.Ticket, viewerID string) TicketResponse {
	return TicketResponse{
		ID:              ticket.ID,
		UserID:          ticket.UserID,
		Title:           ticket.Title,
		Content:         ticket.Content,
		Status:          ticket.Status,
		Deadline:        ticket.Deadline,
		Bounty:          ticket.Bounty,
		BountyFormatted: currencyutil.Format(ticket.Bounty),
		IsOwner:         viewerID != "" && viewerID == ticket.UserID,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}
