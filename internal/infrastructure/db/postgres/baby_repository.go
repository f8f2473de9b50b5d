package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// BabyRepository persists babies and the user↔baby ownership join.
type BabyRepository struct {
	db *sqlx.DB
}

func NewBabyRepository(db *sqlx.DB) *BabyRepository {
	return &BabyRepository{db: db}
}

const babyColumns = "id, uniqueid, name, birthdate, userid, added_on"

// Insert creates the baby row and its ownership edge in one transaction so
// a crash can never leave an orphan baby.
func (r *BabyRepository) Insert(ctx context.Context, userID int64, name string, birthdate time.Time) (*domain.Baby, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, &domain.StoreError{Op: "begin insert baby", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var baby domain.Baby
	err = tx.GetContext(ctx, &baby,
		`INSERT INTO babies (uniqueid, name, birthdate, userid) VALUES ($1, $2, $3, $4)
			RETURNING `+babyColumns,
		uuid.New(), name, birthdate, userID)
	if err != nil {
		return nil, &domain.StoreError{Op: "insert baby", Err: err}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users_babies (user_id, baby_id) VALUES ($1, $2)`, userID, baby.ID); err != nil {
		return nil, &domain.StoreError{Op: "insert baby ownership", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &domain.StoreError{Op: "commit insert baby", Err: err}
	}
	return &baby, nil
}

func (r *BabyRepository) FindByUUID(ctx context.Context, id uuid.UUID) (*domain.Baby, error) {
	var baby domain.Baby
	err := r.db.GetContext(ctx, &baby, `SELECT `+babyColumns+` FROM babies WHERE uniqueid = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEntryFound
		}
		return nil, &domain.StoreError{Op: "find baby by uuid", Err: err}
	}
	return &baby, nil
}

func (r *BabyRepository) FindByID(ctx context.Context, id int64) (*domain.Baby, error) {
	var baby domain.Baby
	err := r.db.GetContext(ctx, &baby, `SELECT `+babyColumns+` FROM babies WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEntryFound
		}
		return nil, &domain.StoreError{Op: "find baby by id", Err: err}
	}
	return &baby, nil
}

func (r *BabyRepository) ListForUser(ctx context.Context, userID int64, p domain.Pagination) ([]domain.Baby, error) {
	p = p.Normalized()
	babies := []domain.Baby{}
	err := r.db.SelectContext(ctx, &babies,
		`SELECT b.id, b.uniqueid, b.name, b.birthdate, b.userid, b.added_on
			FROM babies b JOIN users_babies ub ON ub.baby_id = b.id
			WHERE ub.user_id = $1 ORDER BY b.added_on, b.id LIMIT $2 OFFSET $3`,
		userID, p.PerPage, (p.Page-1)*p.PerPage)
	if err != nil {
		return nil, &domain.StoreError{Op: "list babies for user", Err: err}
	}
	return babies, nil
}

func (r *BabyRepository) DeleteIfOwner(ctx context.Context, babyID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM babies WHERE id = $1 AND userid = $2`, babyID, userID)
	if err != nil {
		return &domain.StoreError{Op: "delete baby", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNoEntryFound
	}
	return nil
}

func (r *BabyRepository) Share(ctx context.Context, userID, babyID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users_babies (user_id, baby_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, babyID)
	if err != nil {
		return &domain.StoreError{Op: "share baby", Err: err}
	}
	return nil
}

func (r *BabyRepository) ListUUIDsForUser(ctx context.Context, userID int64) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT b.uniqueid FROM babies b JOIN users_babies ub ON ub.baby_id = b.id
			WHERE ub.user_id = $1 ORDER BY b.id`, userID)
	if err != nil {
		return nil, &domain.StoreError{Op: "list baby uuids", Err: err}
	}
	return ids, nil
}

func (r *BabyRepository) IDFromUUID(ctx context.Context, id uuid.UUID) (int64, error) {
	var babyID int64
	err := r.db.GetContext(ctx, &babyID, `SELECT id FROM babies WHERE uniqueid = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNoEntryFound
		}
		return 0, &domain.StoreError{Op: "translate baby uuid", Err: err}
	}
	return babyID, nil
}
