package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// Projector builds the CurrentUser view from record-store rows: the user
// row, its role set and its owned-baby UUIDs. Pure function of storage
// state; called only on cache miss or explicit invalidation.
type Projector struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	babies ports.BabyRepository
}

func NewProjector(users ports.UserRepository, roles ports.RoleRepository, babies ports.BabyRepository) *Projector {
	return &Projector{users: users, roles: roles, babies: babies}
}

// Project assembles the projection for userID. A missing user yields
// domain.ErrNoUser.
func (p *Projector) Project(ctx context.Context, userID int64) (domain.CurrentUser, error) {
	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return domain.CurrentUser{}, err
	}

	roles, err := p.roles.ListRoleIDs(ctx, userID)
	if err != nil {
		return domain.CurrentUser{}, err
	}
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleAnonymous}
	}

	anonymous := false
	for _, r := range roles {
		if r == domain.RoleAnonymous {
			anonymous = true
			break
		}
	}

	uuids, err := p.babies.ListUUIDsForUser(ctx, userID)
	if err != nil {
		return domain.CurrentUser{}, err
	}
	if anonymous || uuids == nil {
		uuids = []uuid.UUID{}
	}

	return domain.CurrentUser{
		ID:        user.ID,
		Anonymous: anonymous,
		Username:  user.Username,
		Roles:     roles,
		Active:    user.Active,
		Babies:    uuids,
	}, nil
}
