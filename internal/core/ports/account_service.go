package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// RegisterInput carries a public registration request.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Surname  string
}

// AccountService implements registration, login checks and profile access.
type AccountService interface {
	// Register validates input, hashes the password, creates the account
	// with the user role and returns the stored row.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials. Deactivated accounts fail with
	// domain.ErrNoActiveUser, wrong passwords with ErrIncorrectPassword.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// GetUser returns a user visible to the requester: the owner or an admin.
	GetUser(ctx context.Context, u domain.CurrentUser, id int64) (*domain.User, error)
	// UpdateProfile patches the requester's own profile.
	UpdateProfile(ctx context.Context, u domain.CurrentUser, id int64, patch domain.ProfilePatch) (*domain.User, error)
}

// BabyService manages babies for authenticated users.
type BabyService interface {
	Create(ctx context.Context, u domain.CurrentUser, name string, birthdate time.Time) (*domain.Baby, error)
	// ListOwn returns the requester's babies, in ownership order.
	ListOwn(ctx context.Context, u domain.CurrentUser) ([]domain.Baby, error)
	// Delete removes a baby the requester owns directly.
	Delete(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID) error
}
