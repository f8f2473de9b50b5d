package ports

import (
	"context"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// RoleCount is one row of the grouped role census.
type RoleCount struct {
	Role  domain.Role `json:"id"`
	Name  string      `json:"name"`
	Users int64       `json:"users"`
}

// RoleRepository defines persistence operations for the user↔role join.
type RoleRepository interface {
	Add(ctx context.Context, userID int64, role domain.Role) error
	Remove(ctx context.Context, userID int64, role domain.Role) error
	// ListRoleIDs returns the duplicate-free role set of a user.
	ListRoleIDs(ctx context.Context, userID int64) ([]domain.Role, error)
	GroupedCounts(ctx context.Context) ([]RoleCount, error)
	FindByName(ctx context.Context, name string) (domain.Role, error)
}
