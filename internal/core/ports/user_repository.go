package ports

import (
	"context"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	// DeleteInactiveOlderThan removes deactivated accounts whose last update
	// is older than the given number of days. Returns the rows removed.
	DeleteInactiveOlderThan(ctx context.Context, days int) (int64, error)
	List(ctx context.Context, p domain.Pagination) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
