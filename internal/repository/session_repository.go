package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// SessionRepository manages login session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository constructs repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (id, user_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)
}

func (r *sessionRepository) GetWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error) {
	const query = `
        SELECT s.id, s.user_id, s.expires_at, s.created_at,
               u.id, u.username, u.email, u.password_hash, u.created_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.id=$1`

	var session domain.Session
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, nil, err
	}
	return &session, &user, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM sessions WHERE user_id=$1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}
