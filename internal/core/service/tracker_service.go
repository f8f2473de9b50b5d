package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// TrackerService records and lists meals, dreams and weights. Every call
// gates on baby ownership; writes additionally require an active account.
type TrackerService struct {
	gate    ports.Gate
	meals   ports.MealRepository
	dreams  ports.DreamRepository
	weights ports.WeightRepository
	logger  zerolog.Logger
}

func NewTrackerService(gate ports.Gate, meals ports.MealRepository, dreams ports.DreamRepository, weights ports.WeightRepository, logger zerolog.Logger) *TrackerService {
	return &TrackerService{gate: gate, meals: meals, dreams: dreams, weights: weights, logger: logger}
}

func (s *TrackerService) writeAccess(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID) (int64, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return 0, err
	}
	if !u.Active {
		return 0, domain.ErrNoActiveUser
	}
	return babyID, nil
}

// --- Meals ---

func (s *TrackerService) AddMeal(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, input ports.MealInput) (*domain.Meal, error) {
	babyID, err := s.writeAccess(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, &domain.OutOfBoundsError{Min: 0, Max: math.MaxInt16}
	}
	if input.Elapsed != nil && *input.Elapsed < 0 {
		return nil, &domain.OutOfBoundsError{Min: 0, Max: math.MaxInt16}
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	return s.meals.Insert(ctx, &domain.Meal{
		BabyID:   babyID,
		Date:     date,
		Quantity: input.Quantity,
		Elapsed:  input.Elapsed,
	})
}

func (s *TrackerService) ListMeals(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) ([]domain.Meal, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	return s.meals.ListByBaby(ctx, babyID, p.Normalized())
}

// MealsByDay returns the meals whose timestamp falls on the given calendar
// day. NoRecordError when the day is empty.
func (s *TrackerService) MealsByDay(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, day time.Time) ([]domain.Meal, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	start := domain.Day(day)
	meals, err := s.meals.ListInRange(ctx, babyID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, &domain.NoRecordError{Date: start}
	}
	return meals, nil
}

// --- Dreams ---

// AddDream applies one of three shapes: start (From only, refused while a
// dream is open), stop (To only, closes the most recent open dream) or a
// complete past interval (both set).
func (s *TrackerService) AddDream(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, input ports.DreamInput) (*domain.Dream, error) {
	babyID, err := s.writeAccess(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.From == nil && input.To == nil:
		return nil, domain.ErrEmptyBody

	case input.From != nil && input.To == nil:
		if _, err := s.dreams.FindOpen(ctx, babyID); err == nil {
			return nil, &domain.InvalidValueError{Detail: "an open dream already exists"}
		} else if !errors.Is(err, domain.ErrNoEntryFound) {
			return nil, err
		}
		return s.dreams.Insert(ctx, &domain.Dream{BabyID: babyID, FromDate: input.From.UTC()})

	case input.From == nil:
		return s.dreams.CloseOpen(ctx, babyID, input.To.UTC())

	default:
		if input.To.Before(*input.From) {
			return nil, domain.ErrDatesUnordered
		}
		to := input.To.UTC()
		return s.dreams.Insert(ctx, &domain.Dream{BabyID: babyID, FromDate: input.From.UTC(), ToDate: &to})
	}
}

func (s *TrackerService) ListDreams(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) ([]domain.Dream, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	return s.dreams.ListByBaby(ctx, babyID, p.Normalized())
}

// --- Weights ---

func (s *TrackerService) AddWeight(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, input ports.WeightInput) (*domain.Weight, error) {
	babyID, err := s.writeAccess(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	if input.Value <= 0 {
		return nil, &domain.InvalidValueError{Detail: "weight must be positive"}
	}

	date := domain.Day(time.Now().UTC())
	if input.Date != nil {
		date = domain.Day(*input.Date)
	}

	return s.weights.Insert(ctx, &domain.Weight{
		BabyID: babyID,
		Date:   date,
		Value:  domain.ClampWeight(input.Value),
	})
}

func (s *TrackerService) ListWeights(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) ([]domain.Weight, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	return s.weights.ListByBaby(ctx, babyID, p.Normalized())
}

func (s *TrackerService) PatchWeight(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, id int64, patch domain.WeightPatch) (*domain.Weight, error) {
	babyID, err := s.writeAccess(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.ErrEmptyBody
	}
	if patch.Value != nil {
		if *patch.Value <= 0 {
			return nil, &domain.InvalidValueError{Detail: "weight must be positive"}
		}
		clamped := domain.ClampWeight(*patch.Value)
		patch.Value = &clamped
	}
	if patch.Date != nil {
		day := domain.Day(*patch.Date)
		patch.Date = &day
	}
	return s.weights.Patch(ctx, id, babyID, patch)
}
