package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-board/internal/cache"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/events"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

func newTicketFixture() (*TicketService, *fakeTicketRepo, *memoryListCache, events.Dispatcher) {
	tickets := newFakeTicketRepo()
	listCache := newMemoryListCache()
	dispatcher := events.NewInMemoryDispatcher()
	cache.RegisterInvalidation(dispatcher, listCache)

	svc := NewTicketService(TicketDependencies{
		TicketRepo: tickets,
		ListCache:  listCache,
		Dispatcher: dispatcher,
	})
	return svc, tickets, listCache, dispatcher
}

var (
	alice = &domain.User{ID: "user-alice", Username: "alice"}
	bob   = &domain.User{ID: "user-bob", Username: "bob"}
)

func createTicket(t *testing.T, svc *TicketService, owner *domain.User) *domain.Ticket {
	t.Helper()
	ticket, created, err := svc.Upsert(context.Background(), owner, "", TicketUpsertInput{
		Title:    "Fix the build",
		Content:  "CI fails on main",
		Deadline: "2026-09-30",
		Bounty:   499,
	})
	require.NoError(t, err)
	require.True(t, created)
	return ticket
}

func TestUpsertCreate(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	ticket := createTicket(t, svc, alice)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, alice.ID, ticket.UserID)
	assert.Equal(t, int64(499), ticket.Bounty)
	assert.Equal(t, "2026-09-30", ticket.Deadline)
}

func TestUpsertUpdateRequiresOwnership(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ticket := createTicket(t, svc, alice)

	_, _, err := svc.Upsert(context.Background(), bob, ticket.ID, TicketUpsertInput{
		Title:    "hijacked",
		Content:  "x",
		Deadline: "2026-09-30",
		Bounty:   1,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestUpsertUpdate(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := createTicket(t, svc, alice)

	updated, created, err := svc.Upsert(context.Background(), alice, ticket.ID, TicketUpsertInput{
		Title:    "Fix the build (urgent)",
		Content:  "CI fails on main and release",
		Deadline: "2026-10-01",
		Bounty:   999,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(999), updated.Bounty)

	stored, err := tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix the build (urgent)", stored.Title)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ticket := createTicket(t, svc, alice)

	updated, err := svc.UpdateStatus(context.Background(), alice, ticket.ID, domain.TicketStatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusDone, updated.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ticket := createTicket(t, svc, alice)

	_, err := svc.UpdateStatus(context.Background(), alice, ticket.ID, domain.TicketStatus("ARCHIVED"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatusRequiresOwnership(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := createTicket(t, svc, alice)

	_, err := svc.UpdateStatus(context.Background(), bob, ticket.ID, domain.TicketStatusDone)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	stored, err := tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status, "status unchanged")
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()
	ticket := createTicket(t, svc, alice)

	err := svc.Delete(context.Background(), bob, ticket.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), alice, ticket.ID))
	_, err = tickets.GetByID(context.Background(), ticket.ID)
	assert.Error(t, err)
}

func TestDeleteMissingTicket(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	err := svc.Delete(context.Background(), alice, "no-such-ticket")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestListScopedToOwnerWithSearch(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	createTicket(t, svc, alice)

	_, _, err := svc.Upsert(context.Background(), alice, "", TicketUpsertInput{
		Title:    "Write docs",
		Content:  "Getting started guide",
		Deadline: "2026-09-30",
		Bounty:   250,
	})
	require.NoError(t, err)
	_, _, err = svc.Upsert(context.Background(), bob, "", TicketUpsertInput{
		Title:    "Write docs too",
		Content:  "Bob's docs",
		Deadline: "2026-09-30",
		Bounty:   100,
	})
	require.NoError(t, err)

	page, err := svc.List(context.Background(), alice, TicketListQuery{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total, "only alice's tickets")

	page, err = svc.List(context.Background(), alice, TicketListQuery{SearchTerm: "docs", Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Write docs", page.Items[0].Title)
}

func TestListUsesCacheUntilMutation(t *testing.T) {
	svc, tickets, listCache, _ := newTicketFixture()
	createTicket(t, svc, alice)

	page, err := svc.List(context.Background(), alice, TicketListQuery{Limit: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)

	// sneak a row in behind the cache: a cached read must not see it
	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{
		UserID: alice.ID, Title: "hidden", Content: "x",
		Status: domain.TicketStatusOpen, Deadline: "2026-09-30", Bounty: 1,
	}))
	page, err = svc.List(context.Background(), alice, TicketListQuery{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total, "served from cache")

	// a mutation through the service invalidates the cached view
	createTicket(t, svc, alice)
	page, err = svc.List(context.Background(), alice, TicketListQuery{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.NotEmpty(t, listCache.entries, "fresh page cached again")
}
