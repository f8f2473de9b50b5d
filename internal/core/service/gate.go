package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// Gate evaluates the three authorization predicates against a resolved
// projection. Ownership is decided entirely by the cached baby set, which
// is why mutations must refresh the cache before responding.
type Gate struct {
	babies ports.BabyRepository
}

func NewGate(babies ports.BabyRepository) *Gate {
	return &Gate{babies: babies}
}

func (g *Gate) RequireAuthenticated(u domain.CurrentUser) error {
	if u.Anonymous {
		return domain.ErrLoginRequired
	}
	return nil
}

func (g *Gate) RequireAdmin(u domain.CurrentUser) error {
	if err := g.RequireAuthenticated(u); err != nil {
		return err
	}
	if !u.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// RequireBaby returns the internal baby id when the principal owns the
// baby. The UUID→id translation is the gate's only record-store touch.
func (g *Gate) RequireBaby(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID) (int64, error) {
	if u.Anonymous {
		return 0, domain.ErrLoginRequired
	}
	if !u.HasBaby(babyUUID) {
		return 0, domain.ErrForbidden
	}
	id, err := g.babies.IDFromUUID(ctx, babyUUID)
	if err != nil {
		return 0, err
	}
	return id, nil
}
