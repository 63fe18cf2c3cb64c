package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-board/internal/events"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

func newCommentFixture(t *testing.T) (*CommentService, *TicketService, *fakeCommentRepo) {
	t.Helper()
	tickets := newFakeTicketRepo()
	comments := newFakeCommentRepo()
	dispatcher := events.NewInMemoryDispatcher()

	ticketSvc := NewTicketService(TicketDependencies{TicketRepo: tickets, Dispatcher: dispatcher})
	commentSvc := NewCommentService(CommentDependencies{
		CommentRepo: comments,
		TicketRepo:  tickets,
		Dispatcher:  dispatcher,
	})
	return commentSvc, ticketSvc, comments
}

func TestCreateComment(t *testing.T) {
	commentSvc, ticketSvc, _ := newCommentFixture(t)
	ticket := createTicket(t, ticketSvc, alice)

	comment, err := commentSvc.Create(context.Background(), bob, ticket.ID, "  on it  ")
	require.NoError(t, err)
	assert.Equal(t, "on it", comment.Content)
	assert.Equal(t, bob.ID, comment.UserID)
	assert.Equal(t, ticket.ID, comment.TicketID)
}

func TestCreateCommentOnMissingTicket(t *testing.T) {
	commentSvc, _, _ := newCommentFixture(t)

	_, err := commentSvc.Create(context.Background(), bob, "no-such-ticket", "hello")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteCommentRequiresAuthorship(t *testing.T) {
	commentSvc, ticketSvc, comments := newCommentFixture(t)
	ticket := createTicket(t, ticketSvc, alice)

	comment, err := commentSvc.Create(context.Background(), bob, ticket.ID, "mine")
	require.NoError(t, err)

	err = commentSvc.Delete(context.Background(), alice, comment.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	require.NoError(t, commentSvc.Delete(context.Background(), bob, comment.ID))
	assert.Empty(t, comments.comments)
}

func TestListCommentsByTicket(t *testing.T) {
	commentSvc, ticketSvc, _ := newCommentFixture(t)
	ticket := createTicket(t, ticketSvc, alice)

	_, err := commentSvc.Create(context.Background(), alice, ticket.ID, "first")
	require.NoError(t, err)
	_, err = commentSvc.Create(context.Background(), bob, ticket.ID, "second")
	require.NoError(t, err)

	listed, err := commentSvc.ListByTicket(context.Background(), ticket.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
