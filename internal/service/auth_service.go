package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/repository"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// credentialsMessage is deliberately identical for unknown emails and bad
// passwords, so sign-in never leaks account existence.
const credentialsMessage = "Incorrect email or password"

// duplicateAccountMessage is shown on unique violations at sign-up.
const duplicateAccountMessage = "Either email or username is already in use"

// AuthService coordinates sign-up, sign-in, and sign-out flows.
type AuthService struct {
	users    repository.UserRepository
	sessions *auth.SessionManager
	hasher   *auth.Hasher
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	SessionManager *auth.SessionManager
	Hasher         *auth.Hasher
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		sessions: deps.SessionManager,
		hasher:   deps.Hasher,
	}
}

// SignUp creates a new account and signs it in. Uniqueness of email and
// username is enforced by the database; violations surface as a single
// combined message so neither field is confirmed taken on its own.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*domain.User, *domain.Session, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, nil, apperrors.NewConflict(duplicateAccountMessage, nil)
		}
		return nil, nil, err
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// SignIn authenticates credentials and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized(credentialsMessage)
		}
		return nil, nil, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apperrors.NewUnauthorized(credentialsMessage)
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// SignOut deletes the session record.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
