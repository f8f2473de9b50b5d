package ports

import (
	"context"
	"time"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// MealRepository defines persistence operations for meal records.
type MealRepository interface {
	Insert(ctx context.Context, meal *domain.Meal) (*domain.Meal, error)
	ListByBaby(ctx context.Context, babyID int64, p domain.Pagination) ([]domain.Meal, error)
	// ListInRange returns meals with date in [from, toExclusive).
	ListInRange(ctx context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Meal, error)
	FirstAndLastDate(ctx context.Context, babyID int64) (first, last time.Time, err error)
}

// DreamRepository defines persistence operations for sleep records.
type DreamRepository interface {
	Insert(ctx context.Context, dream *domain.Dream) (*domain.Dream, error)
	ListByBaby(ctx context.Context, babyID int64, p domain.Pagination) ([]domain.Dream, error)
	// ListInRange returns closed dreams whose to_date lies in [from, toExclusive).
	ListInRange(ctx context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Dream, error)
	FirstAndLastDate(ctx context.Context, babyID int64) (first, last time.Time, err error)
	// FindOpen returns the open dream of a baby, or domain.ErrNoEntryFound.
	FindOpen(ctx context.Context, babyID int64) (*domain.Dream, error)
	// CloseOpen sets to_date on the most recent open dream of the baby.
	// Fails with domain.ErrNoEntryFound when none is open.
	CloseOpen(ctx context.Context, babyID int64, to time.Time) (*domain.Dream, error)
}

// WeightRepository defines persistence operations for weight records.
type WeightRepository interface {
	Insert(ctx context.Context, weight *domain.Weight) (*domain.Weight, error)
	ListByBaby(ctx context.Context, babyID int64, p domain.Pagination) ([]domain.Weight, error)
	ListInRange(ctx context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Weight, error)
	Patch(ctx context.Context, id, babyID int64, patch domain.WeightPatch) (*domain.Weight, error)
}

// TableCount is one row of the admin stats report.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// StatsRepository reports row counts across the record store's tables.
type StatsRepository interface {
	CountTables(ctx context.Context) ([]TableCount, error)
}
