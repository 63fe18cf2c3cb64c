package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/repository"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// CommentService coordinates ticket comments.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles requirements for comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TicketRepo  repository.TicketRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create attaches a comment to an existing ticket.
func (s *CommentService) Create(ctx context.Context, user *domain.User, ticketID, content string) (*domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		UserID:   user.ID,
		Content:  strings.TrimSpace(content),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		ActorID:  user.ID,
		Payload:  events.CommentAddedPayload{CommentID: comment.ID},
	})
	return comment, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, user *domain.User, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !auth.IsOwner(user, comment.UserID) {
		return apperrors.NewForbidden("not the comment author")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentDeleted,
		TicketID: comment.TicketID,
		ActorID:  user.ID,
	})
	return nil
}

// ListByTicket returns a ticket's comments oldest first.
func (s *CommentService) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.Comment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, apperrors.MapError(err)
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID, limit, offset)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

func (s *CommentService) publishEvent(ctx context.Context, event events.Event) {
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
