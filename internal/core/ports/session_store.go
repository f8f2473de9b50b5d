package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by SessionStore.Get when the key is absent.
var ErrCacheMiss = errors.New("session store: cache miss")

// SessionStore is the TTL'd key→payload map backing the session cache.
// Keys are namespaced "user_<id>".
type SessionStore interface {
	// Put sets or replaces a key. A zero ttl stores the key without expiry.
	Put(ctx context.Context, key, payload string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}
