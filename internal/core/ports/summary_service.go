package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// DreamSummary is the daily sleep roll-up. Summary renders Minutes as
// "Hh Mm".
type DreamSummary struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
	Minutes int64  `json:"minutes"`
}

// MealSummary is the daily feeding roll-up: meal count, total nursing time
// and total formula volume in millilitres.
type MealSummary struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Nursing string `json:"nursing"`
	Formula int32  `json:"formula"`
}

// PagedDreamSummaries is one page of dream roll-ups plus navigation.
type PagedDreamSummaries struct {
	Data     []DreamSummary
	PageInfo domain.PageInfo
}

// PagedMealSummaries is one page of meal roll-ups plus navigation.
type PagedMealSummaries struct {
	Data     []MealSummary
	PageInfo domain.PageInfo
}

// SummaryService produces windowed daily roll-ups. Windows are inclusive
// calendar-day ranges capped at 365 days; pages slice the day range, and
// only non-empty days are emitted.
type SummaryService interface {
	DreamRange(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, from, to time.Time, p domain.Pagination) (*PagedDreamSummaries, error)
	DreamAll(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) (*PagedDreamSummaries, error)
	DreamLastDays(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, days int, p domain.Pagination) (*PagedDreamSummaries, error)

	MealRange(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, from, to time.Time, p domain.Pagination) (*PagedMealSummaries, error)
	MealAll(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) (*PagedMealSummaries, error)
	MealLastDays(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, days int, p domain.Pagination) (*PagedMealSummaries, error)
}
