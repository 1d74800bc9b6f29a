package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Login issues a new session for an already resolved user.
func (s *Service) Login(ctx context.Context, userID int64, name string) (Session, error) {
	if userID <= 0 || strings.TrimSpace(name) == "" {
		return Session{}, ErrUserInvalidArgs
	}

	sess := Session{
		Token:    uuid.NewString(),
		UserID:   userID,
		Username: name,
	}
	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) CurrentSession(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}
	return s.sessions.Get(ctx, token)
}
