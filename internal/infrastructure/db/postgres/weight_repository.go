package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// WeightRepository persists weight measurements.
type WeightRepository struct {
	db *sqlx.DB
}

func NewWeightRepository(db *sqlx.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

const weightColumns = "id, baby_id, date, value"

func (r *WeightRepository) Insert(ctx context.Context, weight *domain.Weight) (*domain.Weight, error) {
	var created domain.Weight
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO weights (baby_id, date, value) VALUES ($1, $2, $3)
			RETURNING `+weightColumns,
		weight.BabyID, weight.Date, weight.Value)
	if err != nil {
		return nil, &domain.StoreError{Op: "insert weight", Err: err}
	}
	return &created, nil
}

func (r *WeightRepository) ListByBaby(ctx context.Context, babyID int64, p domain.Pagination) ([]domain.Weight, error) {
	p = p.Normalized()
	weights := []domain.Weight{}
	err := r.db.SelectContext(ctx, &weights,
		`SELECT `+weightColumns+` FROM weights WHERE baby_id = $1
			ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`,
		babyID, p.PerPage, (p.Page-1)*p.PerPage)
	if err != nil {
		return nil, &domain.StoreError{Op: "list weights", Err: err}
	}
	return weights, nil
}

func (r *WeightRepository) ListInRange(ctx context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Weight, error) {
	weights := []domain.Weight{}
	err := r.db.SelectContext(ctx, &weights,
		`SELECT `+weightColumns+` FROM weights
			WHERE baby_id = $1 AND date >= $2 AND date < $3 ORDER BY date, id`,
		babyID, from, toExclusive)
	if err != nil {
		return nil, &domain.StoreError{Op: "list weights in range", Err: err}
	}
	return weights, nil
}

// Patch updates the given fields of a weight row, scoped to babyID so a
// row can never be patched across babies.
func (r *WeightRepository) Patch(ctx context.Context, id, babyID int64, patch domain.WeightPatch) (*domain.Weight, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Value != nil {
		add("value", *patch.Value)
	}
	args = append(args, id, babyID)

	query := fmt.Sprintf(`UPDATE weights SET %s WHERE id = $%d AND baby_id = $%d RETURNING `+weightColumns,
		strings.Join(sets, ", "), len(args)-1, len(args))

	var weight domain.Weight
	if err := r.db.GetContext(ctx, &weight, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEntryFound
		}
		return nil, &domain.StoreError{Op: "patch weight", Err: err}
	}
	return &weight, nil
}
