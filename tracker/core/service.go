package core

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type Service struct {
	db         DB
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewService(db DB, sessions SessionStore, sessionTTL time.Duration) *Service {
	return &Service{
		db:         db,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Users

const (
	minUsernameLen = 2
	maxUsernameLen = 40
)

// NormalizeUsername returns the identity key of a display name: two names
// that differ only in case or surrounding space are the same user.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsValidUsername is the rule for explicitly registered names:
// 2-40 letters, digits, '.', '_' or '-'.
func IsValidUsername(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < minUsernameLen || n > maxUsernameLen {
		return false
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// LoginOrCreate returns the user with the given name, creating it on first
// login. Concurrent calls with the same name resolve to a single row.
func (s *Service) LoginOrCreate(ctx context.Context, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrUserInvalidArgs
	}
	return s.db.UpsertUser(ctx, name, NormalizeUsername(name))
}

func (s *Service) Register(ctx context.Context, name string) (User, error) {
	name = strings.TrimSpace(name)
	if !IsValidUsername(name) {
		return User{}, ErrUserInvalidArgs
	}
	return s.db.CreateUser(ctx, name, NormalizeUsername(name))
}

func (s *Service) SignIn(ctx context.Context, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrUserInvalidArgs
	}

	u, err := s.db.GetUserByName(ctx, NormalizeUsername(name))
	if err != nil {
		return User{}, err
	}
	return s.db.TouchLogin(ctx, u.ID)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.db.ListUsers(ctx)
}
