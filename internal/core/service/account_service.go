package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

const minPasswordLength = 4

// AccountService implements registration, credential checks and profile
// reads/updates.
type AccountService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewAccountService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, roles: roles, logger: logger}
}

// Register validates the input, hashes the password and creates the
// account with the user role. Validation runs before any I/O.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || hasWhitespace(username) {
		return nil, &domain.InvalidValueError{Detail: "username must be non-empty without whitespace"}
	}
	if len(input.Password) < minPasswordLength {
		return nil, &domain.BadRequestError{Msg: "Password too short."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        optional(input.Email),
		Name:         optional(input.Name),
		Surname:      optional(input.Surname),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.roles.Add(ctx, created.ID, domain.RoleUser); err != nil {
		s.logger.Error().Err(err).Int64("user_id", created.ID).Msg("failed to grant user role")
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials. Deactivated accounts are refused before the
// password check so the caller cannot probe their passwords.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrIncorrectPassword
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrNoActiveUser
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrIncorrectPassword
	}
	return user, nil
}

// GetUser returns the user row when the requester is its owner or an admin.
func (s *AccountService) GetUser(ctx context.Context, u domain.CurrentUser, id int64) (*domain.User, error) {
	if u.Anonymous {
		return nil, domain.ErrLoginRequired
	}
	if u.ID != id && !u.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

// UpdateProfile patches the requester's own profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, u domain.CurrentUser, id int64, patch domain.ProfilePatch) (*domain.User, error) {
	if u.Anonymous {
		return nil, domain.ErrLoginRequired
	}
	if u.ID != id {
		return nil, domain.ErrForbidden
	}
	if !u.Active {
		return nil, domain.ErrNoActiveUser
	}
	if patch.Empty() {
		return nil, domain.ErrEmptyBody
	}
	return s.users.UpdateProfile(ctx, id, patch)
}

func hasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
