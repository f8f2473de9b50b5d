package ports

import (
	"context"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// SessionManager maps cookie-borne user ids to CurrentUser projections and
// owns the session-store cache of those projections. Cookie issuance and
// parsing live in the HTTP layer; the manager only sees user ids.
type SessionManager interface {
	// Login projects and caches the user with a fresh TTL, returning the
	// projection to bind to the cookie session.
	Login(ctx context.Context, userID int64) (domain.CurrentUser, error)
	// Logout drops the cached projection.
	Logout(ctx context.Context, userID int64) error
	// Resolve returns the identity for a request. A zero id or the
	// anonymous sentinel yields the guest projection without touching the
	// session store; otherwise the cache-aside path runs.
	Resolve(ctx context.Context, userID int64) (domain.CurrentUser, error)
	// Refresh drops the cached projection, re-projects and re-caches with a
	// fresh TTL. Call it after any mutation that changes the projection.
	Refresh(ctx context.Context, userID int64) (domain.CurrentUser, error)
	// EnsureCached projects and caches the user if absent. Idempotent.
	EnsureCached(ctx context.Context, userID int64) error
}
