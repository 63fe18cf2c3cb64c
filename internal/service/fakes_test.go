package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/repository"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
		if existing.Username == user.Username {
			return uniqueViolation("users_username_key")
		}
	}
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	sessions map[string]*domain.Session
}

func newFakeSessionRepo(users *fakeUserRepo) *fakeSessionRepo {
	return &fakeSessionRepo{users: users.users, sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *session
	stored.CreatedAt = time.Now()
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) GetWithUser(_ context.Context, id string) (*domain.Session, *domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil, pgx.ErrNoRows
	}
	user, ok := f.users[session.UserID]
	if !ok {
		return nil, nil, pgx.ErrNoRows
	}
	return session, user, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", f.seq)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *ticket
	stored.UpdatedAt = time.Now()
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) matches(ticket *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.OwnerID != nil && ticket.UserID != *filter.OwnerID {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if ticket.Status == status {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.SearchTerm != nil {
		term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
		if term != "" &&
			!strings.Contains(strings.ToLower(ticket.Title), term) &&
			!strings.Contains(strings.ToLower(ticket.Content), term) {
			return false
		}
	}
	return true
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if f.matches(ticket, filter) {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) CountWithFilter(_ context.Context, filter repository.TicketFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ticket := range f.tickets {
		if f.matches(ticket, filter) {
			count++
		}
	}
	return count, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*domain.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	comment.ID = fmt.Sprintf("comment-%d", f.seq)
	comment.CreatedAt = time.Now()
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string, limit, offset int) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Comment
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

// memoryListCache is an in-process stand-in for the Redis list cache.
type memoryListCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryListCache() *memoryListCache {
	return &memoryListCache{entries: map[string][]byte{}}
}

func (c *memoryListCache) Get(_ context.Context, ownerID, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[ownerID+"|"+key]
	return payload, ok
}

func (c *memoryListCache) Set(_ context.Context, ownerID, key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ownerID+"|"+key] = payload
}

func (c *memoryListCache) Invalidate(_ context.Context, ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, ownerID+"|") {
			delete(c.entries, key)
		}
	}
}
