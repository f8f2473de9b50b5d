package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// inactiveRetentionDays is how long a deactivated account is kept before
// the purge removes it.
const inactiveRetentionDays = 365

// AdminService implements the admin surface. Mutations that change another
// user's projection refresh that user's session cache before returning, so
// the next request they make sees current authorization.
type AdminService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	babies   ports.BabyRepository
	stats    ports.StatsRepository
	gate     ports.Gate
	sessions ports.SessionManager
	logger   zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	babies ports.BabyRepository,
	stats ports.StatsRepository,
	gate ports.Gate,
	sessions ports.SessionManager,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		roles:    roles,
		babies:   babies,
		stats:    stats,
		gate:     gate,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *AdminService) Stats(ctx context.Context, u domain.CurrentUser) ([]ports.TableCount, error) {
	if err := s.gate.RequireAdmin(u); err != nil {
		return nil, err
	}
	return s.stats.CountTables(ctx)
}

func (s *AdminService) Roles(ctx context.Context, u domain.CurrentUser) ([]ports.RoleCount, error) {
	if err := s.gate.RequireAdmin(u); err != nil {
		return nil, err
	}
	return s.roles.GroupedCounts(ctx)
}

func (s *AdminService) GrantRole(ctx context.Context, u domain.CurrentUser, username, roleName string) error {
	return s.changeRole(ctx, u, username, roleName, s.roles.Add)
}

func (s *AdminService) RevokeRole(ctx context.Context, u domain.CurrentUser, username, roleName string) error {
	return s.changeRole(ctx, u, username, roleName, s.roles.Remove)
}

func (s *AdminService) changeRole(
	ctx context.Context,
	u domain.CurrentUser,
	username, roleName string,
	apply func(context.Context, int64, domain.Role) error,
) error {
	if err := s.gate.RequireAdmin(u); err != nil {
		return err
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := apply(ctx, target.ID, role); err != nil {
		return err
	}

	// Stale role sets are an authorization bug; invalidate before replying.
	if _, err := s.sessions.Refresh(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("username", username).
		Str("role", role.String()).
		Int64("admin_id", u.ID).
		Msg("role set changed")
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, u domain.CurrentUser, p domain.Pagination) ([]domain.User, int64, error) {
	if err := s.gate.RequireAdmin(u); err != nil {
		return nil, 0, err
	}
	users, err := s.users.List(ctx, p.Normalized())
	if err != nil {
		return nil, 0, err
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (s *AdminService) FindUser(ctx context.Context, u domain.CurrentUser, id int64) (*domain.User, error) {
	if err := s.gate.RequireAdmin(u); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *AdminService) ToggleActive(ctx context.Context, u domain.CurrentUser, id int64) (bool, error) {
	if err := s.gate.RequireAdmin(u); err != nil {
		return false, err
	}
	if id == domain.AnonymousID {
		return false, domain.ErrForbidden
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !target.Active
	if err := s.users.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	if _, err := s.sessions.Refresh(ctx, id); err != nil {
		return false, err
	}

	s.logger.Info().Int64("user_id", id).Bool("active", next).Int64("admin_id", u.ID).Msg("user active flag toggled")
	return next, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, u domain.CurrentUser, id int64) error {
	if err := s.gate.RequireAdmin(u); err != nil {
		return err
	}
	if id == domain.AnonymousID || id == u.ID {
		return domain.ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	// The account is gone; its cached projection must not outlive it.
	return s.sessions.Logout(ctx, id)
}

func (s *AdminService) PurgeInactive(ctx context.Context, u domain.CurrentUser) (int64, error) {
	if err := s.gate.RequireAdmin(u); err != nil {
		return 0, err
	}
	removed, err := s.users.DeleteInactiveOlderThan(ctx, inactiveRetentionDays)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Int64("admin_id", u.ID).Msg("inactive accounts purged")
	}
	return removed, nil
}

func (s *AdminService) ShareBaby(ctx context.Context, u domain.CurrentUser, username string, babyUUID uuid.UUID) error {
	if err := s.gate.RequireAdmin(u); err != nil {
		return err
	}

	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	babyID, err := s.babies.IDFromUUID(ctx, babyUUID)
	if err != nil {
		return err
	}
	if err := s.babies.Share(ctx, target.ID, babyID); err != nil {
		return err
	}

	// The recipient's baby set just changed; a stale cache would refuse
	// them the baby they were granted.
	if _, err := s.sessions.Refresh(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Str("baby", babyUUID.String()).Int64("admin_id", u.ID).Msg("baby shared")
	return nil
}
