package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// AdminService implements the admin surface. Every method requires the
// admin role; methods that change a user's projection refresh that user's
// session cache before returning.
type AdminService interface {
	Stats(ctx context.Context, u domain.CurrentUser) ([]TableCount, error)
	Roles(ctx context.Context, u domain.CurrentUser) ([]RoleCount, error)
	GrantRole(ctx context.Context, u domain.CurrentUser, username, roleName string) error
	RevokeRole(ctx context.Context, u domain.CurrentUser, username, roleName string) error

	ListUsers(ctx context.Context, u domain.CurrentUser, p domain.Pagination) ([]domain.User, int64, error)
	FindUser(ctx context.Context, u domain.CurrentUser, id int64) (*domain.User, error)
	// ToggleActive flips the active flag and returns the new state.
	ToggleActive(ctx context.Context, u domain.CurrentUser, id int64) (bool, error)
	DeleteUser(ctx context.Context, u domain.CurrentUser, id int64) error
	// PurgeInactive removes deactivated accounts past the retention window.
	PurgeInactive(ctx context.Context, u domain.CurrentUser) (int64, error)

	// ShareBaby adds the user↔baby ownership edge and refreshes the
	// recipient's cached projection.
	ShareBaby(ctx context.Context, u domain.CurrentUser, username string, babyUUID uuid.UUID) error
}
