package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/cache"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/repository"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	listCache  cache.TicketListCache
	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	ListCache  cache.TicketListCache
	Dispatcher events.Dispatcher
}

// TicketUpsertInput describes validated create/update payload. Bounty is
// already converted to integer cents.
type TicketUpsertInput struct {
	Title    string
	Content  string
	Deadline string
	Bounty   int64
}

// TicketListQuery describes listing and search parameters.
type TicketListQuery struct {
	SearchTerm string
	Statuses   []domain.TicketStatus
	Limit      int
	Offset     int
}

// TicketPage is one page of a user's ticket list.
type TicketPage struct {
	Items []domain.Ticket `json:"items"`
	Total int64           `json:"total"`
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		listCache:  deps.ListCache,
		dispatcher: deps.Dispatcher,
	}
}

// Upsert creates a ticket when id is empty, otherwise updates an existing
// one. Updates require ownership; the check happens here at the mutation
// boundary, not in the UI.
func (s *TicketService) Upsert(ctx context.Context, user *domain.User, id string, input TicketUpsertInput) (*domain.Ticket, bool, error) {
	if id == "" {
		ticket := &domain.Ticket{
			UserID:   user.ID,
			Title:    strings.TrimSpace(input.Title),
			Content:  strings.TrimSpace(input.Content),
			Status:   domain.TicketStatusOpen,
			Deadline: input.Deadline,
			Bounty:   input.Bounty,
		}
		if err := s.tickets.Create(ctx, ticket); err != nil {
			return nil, false, err
		}
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketCreated,
			TicketID: ticket.ID,
			ActorID:  user.ID,
			Payload: events.TicketCreatedPayload{
				Title:  ticket.Title,
				Bounty: ticket.Bounty,
			},
		})
		return ticket, true, nil
	}

	ticket, err := s.ownedTicket(ctx, user, id)
	if err != nil {
		return nil, false, err
	}

	ticket.Title = strings.TrimSpace(input.Title)
	ticket.Content = strings.TrimSpace(input.Content)
	ticket.Deadline = input.Deadline
	ticket.Bounty = input.Bounty
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, false, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		ActorID:  user.ID,
	})
	return ticket, false, nil
}

// UpdateStatus moves a ticket to a new status. Only the owner may do so.
func (s *TicketService) UpdateStatus(ctx context.Context, user *domain.User, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(status) {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{
			"status": fmt.Sprintf("unknown status %q", status),
		})
	}

	ticket, err := s.ownedTicket(ctx, user, id)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	ticket.Status = status

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  user.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// Delete removes a ticket. Only the owner may delete it.
func (s *TicketService) Delete(ctx context.Context, user *domain.User, id string) error {
	ticket, err := s.ownedTicket(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		ActorID:  user.ID,
	})
	return nil
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns one page of the user's tickets, served from the cached
// list view when possible.
func (s *TicketService) List(ctx context.Context, user *domain.User, query TicketListQuery) (*TicketPage, error) {
	key := listCacheKey(query)
	if s.listCache != nil {
		if payload, ok := s.listCache.Get(ctx, user.ID, key); ok {
			var page TicketPage
			if err := json.Unmarshal(payload, &page); err == nil {
				return &page, nil
			}
		}
	}

	filter := repository.TicketFilter{
		OwnerID:  &user.ID,
		Statuses: query.Statuses,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if strings.TrimSpace(query.SearchTerm) != "" {
		filter.SearchTerm = &query.SearchTerm
	}

	items, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.tickets.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Ticket{}
	}

	page := &TicketPage{Items: items, Total: total}
	if s.listCache != nil {
		if payload, err := json.Marshal(page); err == nil {
			s.listCache.Set(ctx, user.ID, key, payload)
		}
	}
	return page, nil
}

func listCacheKey(query TicketListQuery) string {
	statuses := make([]string, 0, len(query.Statuses))
	for _, status := range query.Statuses {
		statuses = append(statuses, string(status))
	}
	return fmt.Sprintf("%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(query.SearchTerm)),
		strings.Join(statuses, ","),
		query.Limit,
		query.Offset,
	)
}

func (s *TicketService) ownedTicket(ctx context.Context, user *domain.User, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !auth.IsOwner(user, ticket.UserID) {
		return nil, apperrors.NewForbidden("not the ticket owner")
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
