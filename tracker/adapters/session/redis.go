package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"deadline-tracker/tracker/core"
)

const (
	keyPrefix     = "session:"
	fieldUserID   = "user_id"
	fieldUsername = "username"
)

// RedisStore keeps one hash per session token. Reading a session extends
// its expiry.
type RedisStore struct {
	log *slog.Logger
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to address; ttl is the sliding expiry applied when a
// session is read.
func NewRedisStore(log *slog.Logger, address string, db int, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            address,
		DB:              db,
		MinRetryBackoff: 3 * time.Second,
		MaxRetryBackoff: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("redis connection problem", "address", address, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	return &RedisStore{log: log, rdb: rdb, ttl: ttl}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, sess core.Session, ttl time.Duration) error {
	key := keyPrefix + sess.Token

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldUserID, sess.UserID, fieldUsername, sess.Username)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w: %w", core.ErrStorage, err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (core.Session, error) {
	key := keyPrefix + token

	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return core.Session{}, fmt.Errorf("get session: %w: %w", core.ErrStorage, err)
	}
	if len(fields) == 0 {
		return core.Session{}, core.ErrSessionNotFound
	}

	uid, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil || uid <= 0 {
		s.log.Warn("corrupt session entry dropped", "key", key)
		_ = s.rdb.Del(ctx, key).Err()
		return core.Session{}, core.ErrSessionNotFound
	}

	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
			s.log.Warn("cannot extend session", "error", err)
		}
	}

	return core.Session{Token: token, UserID: uid, Username: fields[fieldUsername]}, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	n, err := s.rdb.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w: %w", core.ErrStorage, err)
	}
	if n == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

var _ core.SessionStore = (*RedisStore)(nil)
