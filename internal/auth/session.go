package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/repository"
)

const sessionTokenBytes = 32

// SessionManager owns the login session lifecycle: random opaque tokens,
// a fixed TTL, and lazy deletion of expired rows during validation.
type SessionManager struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionManager builds the manager.
func NewSessionManager(sessions repository.SessionRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionManager{sessions: sessions, ttl: ttl, now: time.Now}
}

// generateSessionID returns 256 bits of randomness, hex encoded.
// Collisions are treated as negligible; there is no retry.
func generateSessionID() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Create persists a new session for the user and returns it.
func (m *SessionManager) Create(ctx context.Context, userID string) (*domain.Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate resolves the session and its user. It fails closed: an unknown
// token yields (nil, nil, nil), and an expired one is deleted on the spot
// before yielding the same. Expired rows may linger until the next
// validation attempt; there is no background sweep.
func (m *SessionManager) Validate(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	session, user, err := m.sessions.GetWithUser(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	if session.Expired(m.now()) {
		if err := m.sessions.Delete(ctx, sessionID); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	return session, user, nil
}

// Delete removes the session unconditionally. Deleting an already absent
// session is not an error.
func (m *SessionManager) Delete(ctx context.Context, sessionID string) error {
	return m.sessions.Delete(ctx, sessionID)
}
