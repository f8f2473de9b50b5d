package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// MealRepository persists meal records.
type MealRepository struct {
	db *sqlx.DB
}

func NewMealRepository(db *sqlx.DB) *MealRepository {
	return &MealRepository{db: db}
}

const mealColumns = "id, baby_id, date, quantity, elapsed"

func (r *MealRepository) Insert(ctx context.Context, meal *domain.Meal) (*domain.Meal, error) {
	var created domain.Meal
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO meals (baby_id, date, quantity, elapsed) VALUES ($1, $2, $3, $4)
			RETURNING `+mealColumns,
		meal.BabyID, meal.Date, meal.Quantity, meal.Elapsed)
	if err != nil {
		return nil, &domain.StoreError{Op: "insert meal", Err: err}
	}
	return &created, nil
}

func (r *MealRepository) ListByBaby(ctx context.Context, babyID int64, p domain.Pagination) ([]domain.Meal, error) {
	p = p.Normalized()
	meals := []domain.Meal{}
	err := r.db.SelectContext(ctx, &meals,
		`SELECT `+mealColumns+` FROM meals WHERE baby_id = $1
			ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`,
		babyID, p.PerPage, (p.Page-1)*p.PerPage)
	if err != nil {
		return nil, &domain.StoreError{Op: "list meals", Err: err}
	}
	return meals, nil
}

func (r *MealRepository) ListInRange(ctx context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Meal, error) {
	meals := []domain.Meal{}
	err := r.db.SelectContext(ctx, &meals,
		`SELECT `+mealColumns+` FROM meals
			WHERE baby_id = $1 AND date >= $2 AND date < $3 ORDER BY date, id`,
		babyID, from, toExclusive)
	if err != nil {
		return nil, &domain.StoreError{Op: "list meals in range", Err: err}
	}
	return meals, nil
}

func (r *MealRepository) FirstAndLastDate(ctx context.Context, babyID int64) (time.Time, time.Time, error) {
	row := struct {
		First *time.Time `db:"first"`
		Last  *time.Time `db:"last"`
	}{}
	err := r.db.GetContext(ctx, &row,
		`SELECT min(date) AS first, max(date) AS last FROM meals WHERE baby_id = $1`, babyID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, time.Time{}, &domain.StoreError{Op: "meal date bounds", Err: err}
	}
	if row.First == nil || row.Last == nil {
		return time.Time{}, time.Time{}, domain.ErrNoEntryFound
	}
	return *row.First, *row.Last, nil
}
