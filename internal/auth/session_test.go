package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-board/internal/domain"
)

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	users    map[string]*domain.User
	lookups  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: map[string]*domain.Session{},
		users:    map[string]*domain.User{},
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	stored := *session
	stored.CreatedAt = time.Now()
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionRepo) GetWithUser(_ context.Context, id string) (*domain.Session, *domain.User, error) {
	f.lookups++
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
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func TestCreateSession(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.users["user-1"] = &domain.User{ID: "user-1", Username: "alice"}
	mgr := NewSessionManager(repo, 30*24*time.Hour)

	before := time.Now()
	session, err := mgr.Create(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Len(t, session.ID, 64, "256-bit token, hex encoded")
	assert.Equal(t, "user-1", session.UserID)

	ttl := session.ExpiresAt.Sub(before)
	assert.InDelta(t, (30 * 24 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestValidateSession(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.users["user-1"] = &domain.User{ID: "user-1", Username: "alice"}
	mgr := NewSessionManager(repo, time.Hour)

	created, err := mgr.Create(context.Background(), "user-1")
	require.NoError(t, err)

	session, user, err := mgr.Validate(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, session.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestValidateUnknownSessionFailsClosed(t *testing.T) {
	mgr := NewSessionManager(newFakeSessionRepo(), time.Hour)

	session, user, err := mgr.Validate(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)
}

func TestValidateExpiredSessionDeletesRow(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.users["user-1"] = &domain.User{ID: "user-1"}
	repo.sessions["stale"] = &domain.Session{
		ID:        "stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	mgr := NewSessionManager(repo, time.Hour)

	session, user, err := mgr.Validate(context.Background(), "stale")
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)
	assert.NotContains(t, repo.sessions, "stale", "expired row is lazily deleted")
}

func TestDeleteSessionIsIdempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.users["user-1"] = &domain.User{ID: "user-1"}
	mgr := NewSessionManager(repo, time.Hour)

	session, err := mgr.Create(context.Background(), "user-1")
	require.NoError(t, err)

	require.NoError(t, mgr.Delete(context.Background(), session.ID))
	require.NoError(t, mgr.Delete(context.Background(), session.ID))
}
