package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

const (
	// DefaultSessionTTL is used when configuration supplies nothing usable.
	DefaultSessionTTL = 3600 * time.Second
	// MinSessionTTL is the floor below which configured TTLs are lifted.
	MinSessionTTL = 600 * time.Second
)

// SessionManager glues cookie-borne user ids to cached CurrentUser
// projections, cache-aside over the session store.
type SessionManager struct {
	store     ports.SessionStore
	projector *Projector
	ttl       time.Duration
	log       zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, projector *Projector, ttl time.Duration, log zerolog.Logger) *SessionManager {
	switch {
	case ttl <= 0:
		ttl = DefaultSessionTTL
	case ttl < MinSessionTTL:
		ttl = MinSessionTTL
	}
	return &SessionManager{store: store, projector: projector, ttl: ttl, log: log}
}

// TTL reports the effective cache lifetime.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

func sessionKey(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// Login projects userID and caches it with a fresh TTL.
func (m *SessionManager) Login(ctx context.Context, userID int64) (domain.CurrentUser, error) {
	return m.Refresh(ctx, userID)
}

// Logout drops the cached projection.
func (m *SessionManager) Logout(ctx context.Context, userID int64) error {
	if err := m.store.Del(ctx, sessionKey(userID)); err != nil {
		return &domain.SessionStoreError{Op: "del", Err: err}
	}
	return nil
}

// Resolve returns the identity attached to a request. Guests (zero id or
// the anonymous sentinel) never touch the session store.
func (m *SessionManager) Resolve(ctx context.Context, userID int64) (domain.CurrentUser, error) {
	if userID <= 0 || userID == domain.AnonymousID {
		return domain.Guest(), nil
	}

	key := sessionKey(userID)
	payload, err := m.store.Get(ctx, key)
	switch {
	case err == nil:
		var u domain.CurrentUser
		if jsonErr := json.Unmarshal([]byte(payload), &u); jsonErr == nil {
			return u, nil
		}
		// Corrupt payload: drop the key and fall through to a miss.
		m.log.Warn().Int64("user_id", userID).Msg("discarding undecodable session payload")
		if delErr := m.store.Del(ctx, key); delErr != nil {
			m.log.Error().Err(delErr).Int64("user_id", userID).Msg("failed to drop session key")
		}
	case errors.Is(err, ports.ErrCacheMiss):
		// fall through to projection
	default:
		// A flaky session store must not take requests down; project instead.
		m.log.Error().Err(err).Int64("user_id", userID).Msg("session store read failed")
	}

	return m.projectAndCache(ctx, userID)
}

// Refresh drops the cached projection, re-projects and re-caches. The TTL
// restarts.
func (m *SessionManager) Refresh(ctx context.Context, userID int64) (domain.CurrentUser, error) {
	if err := m.store.Del(ctx, sessionKey(userID)); err != nil {
		return domain.CurrentUser{}, &domain.SessionStoreError{Op: "del", Err: err}
	}
	return m.projectAndCache(ctx, userID)
}

// EnsureCached projects and caches userID when absent. Idempotent.
func (m *SessionManager) EnsureCached(ctx context.Context, userID int64) error {
	ok, err := m.store.Exists(ctx, sessionKey(userID))
	if err != nil {
		return &domain.SessionStoreError{Op: "exists", Err: err}
	}
	if ok {
		return nil
	}
	_, err = m.projectAndCache(ctx, userID)
	return err
}

// projectAndCache may race with itself across concurrent requests for the
// same user; last writer wins, which is harmless because projection is a
// pure function of storage state.
func (m *SessionManager) projectAndCache(ctx context.Context, userID int64) (domain.CurrentUser, error) {
	u, err := m.projector.Project(ctx, userID)
	if err != nil {
		return domain.CurrentUser{}, err
	}

	payload, err := json.Marshal(u)
	if err != nil {
		return domain.CurrentUser{}, err
	}
	if err := m.store.Put(ctx, sessionKey(userID), string(payload), m.ttl); err != nil {
		// The next request repopulates; serve this one from the projection.
		m.log.Error().Err(err).Int64("user_id", userID).Msg("session store write failed")
	}
	return u, nil
}
