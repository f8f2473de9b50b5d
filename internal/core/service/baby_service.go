package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// BabyService creates, lists and removes babies for authenticated users.
// Creating or deleting a baby changes the owner's projection, so both
// paths refresh the session cache before returning.
type BabyService struct {
	babies   ports.BabyRepository
	sessions ports.SessionManager
	logger   zerolog.Logger
}

func NewBabyService(babies ports.BabyRepository, sessions ports.SessionManager, logger zerolog.Logger) *BabyService {
	return &BabyService{babies: babies, sessions: sessions, logger: logger}
}

func (s *BabyService) Create(ctx context.Context, u domain.CurrentUser, name string, birthdate time.Time) (*domain.Baby, error) {
	if u.Anonymous {
		return nil, domain.ErrLoginRequired
	}
	if !u.Active {
		return nil, domain.ErrNoActiveUser
	}
	if name == "" {
		return nil, &domain.InvalidValueError{Detail: "baby name must not be empty"}
	}

	baby, err := s.babies.Insert(ctx, u.ID, name, domain.Day(birthdate))
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.Refresh(ctx, u.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", u.ID).Str("baby", baby.UUID.String()).Msg("baby registered")
	return baby, nil
}

func (s *BabyService) ListOwn(ctx context.Context, u domain.CurrentUser) ([]domain.Baby, error) {
	if u.Anonymous {
		return []domain.Baby{}, nil
	}
	return s.babies.ListForUser(ctx, u.ID, domain.DefaultPagination())
}

func (s *BabyService) Delete(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID) error {
	if u.Anonymous {
		return domain.ErrLoginRequired
	}
	if !u.Active {
		return domain.ErrNoActiveUser
	}
	if !u.HasBaby(babyUUID) {
		return domain.ErrForbidden
	}

	id, err := s.babies.IDFromUUID(ctx, babyUUID)
	if err != nil {
		return err
	}
	if err := s.babies.DeleteIfOwner(ctx, id, u.ID); err != nil {
		return err
	}

	_, err = s.sessions.Refresh(ctx, u.ID)
	return err
}
