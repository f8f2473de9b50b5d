package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// DreamRepository persists sleep records and enforces the single open
// dream invariant at the storage surface.
type DreamRepository struct {
	db *sqlx.DB
}

func NewDreamRepository(db *sqlx.DB) *DreamRepository {
	return &DreamRepository{db: db}
}

const dreamColumns = "id, baby_id, from_date, to_date"

func (r *DreamRepository) Insert(ctx context.Context, dream *domain.Dream) (*domain.Dream, error) {
	var created domain.Dream
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO dreams (baby_id, from_date, to_date) VALUES ($1, $2, $3)
			RETURNING `+dreamColumns,
		dream.BabyID, dream.FromDate, dream.ToDate)
	if err != nil {
		return nil, &domain.StoreError{Op: "insert dream", Err: err}
	}
	return &created, nil
}

func (r *DreamRepository) ListByBaby(ctx context.Context, babyID int64, p domain.Pagination) ([]domain.Dream, error) {
	p = p.Normalized()
	dreams := []domain.Dream{}
	err := r.db.SelectContext(ctx, &dreams,
		`SELECT `+dreamColumns+` FROM dreams WHERE baby_id = $1
			ORDER BY from_date DESC, id DESC LIMIT $2 OFFSET $3`,
		babyID, p.PerPage, (p.Page-1)*p.PerPage)
	if err != nil {
		return nil, &domain.StoreError{Op: "list dreams", Err: err}
	}
	return dreams, nil
}

// ListInRange selects closed dreams by the day they ended: a dream rolls
// up on its to_date.
func (r *DreamRepository) ListInRange(ctx context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Dream, error) {
	dreams := []domain.Dream{}
	err := r.db.SelectContext(ctx, &dreams,
		`SELECT `+dreamColumns+` FROM dreams
			WHERE baby_id = $1 AND to_date IS NOT NULL AND to_date >= $2 AND to_date < $3
			ORDER BY to_date, id`,
		babyID, from, toExclusive)
	if err != nil {
		return nil, &domain.StoreError{Op: "list dreams in range", Err: err}
	}
	return dreams, nil
}

func (r *DreamRepository) FirstAndLastDate(ctx context.Context, babyID int64) (time.Time, time.Time, error) {
	row := struct {
		First *time.Time `db:"first"`
		Last  *time.Time `db:"last"`
	}{}
	err := r.db.GetContext(ctx, &row,
		`SELECT min(to_date) AS first, max(to_date) AS last
			FROM dreams WHERE baby_id = $1 AND to_date IS NOT NULL`, babyID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, time.Time{}, &domain.StoreError{Op: "dream date bounds", Err: err}
	}
	if row.First == nil || row.Last == nil {
		return time.Time{}, time.Time{}, domain.ErrNoEntryFound
	}
	return *row.First, *row.Last, nil
}

func (r *DreamRepository) FindOpen(ctx context.Context, babyID int64) (*domain.Dream, error) {
	var dream domain.Dream
	err := r.db.GetContext(ctx, &dream,
		`SELECT `+dreamColumns+` FROM dreams
			WHERE baby_id = $1 AND to_date IS NULL ORDER BY from_date DESC LIMIT 1`, babyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEntryFound
		}
		return nil, &domain.StoreError{Op: "find open dream", Err: err}
	}
	return &dream, nil
}

// CloseOpen stamps to_date on the most recent open dream of the baby.
func (r *DreamRepository) CloseOpen(ctx context.Context, babyID int64, to time.Time) (*domain.Dream, error) {
	var dream domain.Dream
	err := r.db.GetContext(ctx, &dream,
		`UPDATE dreams SET to_date = $1
			WHERE id = (
				SELECT id FROM dreams
				WHERE baby_id = $2 AND to_date IS NULL
				ORDER BY from_date DESC LIMIT 1
			)
			RETURNING `+dreamColumns,
		to, babyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEntryFound
		}
		return nil, &domain.StoreError{Op: "close open dream", Err: err}
	}
	return &dream, nil
}
