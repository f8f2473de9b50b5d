package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// BabyRepository defines persistence operations for babies and the
// user↔baby ownership join.
type BabyRepository interface {
	// Insert creates the baby and its ownership edge for userID in one unit.
	Insert(ctx context.Context, userID int64, name string, birthdate time.Time) (*domain.Baby, error)
	FindByUUID(ctx context.Context, id uuid.UUID) (*domain.Baby, error)
	FindByID(ctx context.Context, id int64) (*domain.Baby, error)
	ListForUser(ctx context.Context, userID int64, p domain.Pagination) ([]domain.Baby, error)
	DeleteIfOwner(ctx context.Context, babyID, userID int64) error

	// Ownership join.
	Share(ctx context.Context, userID, babyID int64) error
	ListUUIDsForUser(ctx context.Context, userID int64) ([]uuid.UUID, error)
	IDFromUUID(ctx context.Context, id uuid.UUID) (int64, error)
}
