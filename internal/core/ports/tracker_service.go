package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// MealInput carries a new meal record. A nil Date means "now".
type MealInput struct {
	Date     *time.Time
	Quantity *int16
	Elapsed  *int16
}

// DreamInput carries a sleep event. Three shapes are accepted:
//   - From set, To nil: start a dream (rejected while one is open).
//   - From nil, To set: close the most recent open dream.
//   - both set: record a complete past interval.
type DreamInput struct {
	From *time.Time
	To   *time.Time
}

// WeightInput carries a new weight measurement. A nil Date means today.
type WeightInput struct {
	Date  *time.Time
	Value float64
}

// TrackerService records and lists activity entries. Every method gates on
// baby ownership and, for writes, on the requester being active.
type TrackerService interface {
	AddMeal(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, input MealInput) (*domain.Meal, error)
	ListMeals(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) ([]domain.Meal, error)
	MealsByDay(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, day time.Time) ([]domain.Meal, error)

	AddDream(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, input DreamInput) (*domain.Dream, error)
	ListDreams(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) ([]domain.Dream, error)

	AddWeight(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, input WeightInput) (*domain.Weight, error)
	ListWeights(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) ([]domain.Weight, error)
	PatchWeight(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, id int64, patch domain.WeightPatch) (*domain.Weight, error)
}
