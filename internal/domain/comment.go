package domain

import "time"

// Comment is a user remark attached to a ticket.
type Comment struct {
	ID        string
	TicketID  string
	UserID    string
	Content   string
	CreatedAt time.Time
}
