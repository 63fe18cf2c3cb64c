package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusDone       TicketStatus = "DONE"
)

// ValidTicketStatus reports whether the value is a known status.
func ValidTicketStatus(status TicketStatus) bool {
	switch status {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusDone:
		return true
	}
	return false
}

// Ticket is the aggregate for bounty-bearing tasks. Deadline keeps the
// YYYY-MM-DD form it is entered in; Bounty is stored in integer cents.
type Ticket struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Status    TicketStatus
	Deadline  string
	Bounty    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
