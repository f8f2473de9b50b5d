package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// Gate decides whether the current principal may act on a target resource.
// Ownership checks run against the cached projection only; the single
// record-store touch is the UUID→id translation on success.
type Gate interface {
	// RequireAuthenticated fails with domain.ErrLoginRequired for guests.
	RequireAuthenticated(u domain.CurrentUser) error
	// RequireAdmin fails with domain.ErrForbidden unless the projection
	// carries the admin role. Implies authenticated.
	RequireAdmin(u domain.CurrentUser) error
	// RequireBaby succeeds iff u is authenticated and owns babyUUID,
	// returning the internal baby id. Guests fail with ErrLoginRequired,
	// authenticated non-owners with ErrForbidden.
	RequireBaby(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID) (int64, error)
}
