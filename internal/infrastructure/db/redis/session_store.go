package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cuna-app/cuna/internal/core/ports"
)

// SessionStore implements the TTL'd key→payload map over Redis. The
// session manager namespaces keys as user_<id>; this layer stays agnostic.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put sets or replaces a key. A zero ttl stores it without expiry.
func (s *SessionStore) Put(ctx context.Context, key, payload string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, key, payload, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SessionStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SessionStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
