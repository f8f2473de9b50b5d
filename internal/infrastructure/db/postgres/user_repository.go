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

// UserRepository persists user accounts.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, password_hash, email, name, surname, active, created_at, updated_at"

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash, email, name, surname, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	var created domain.User
	err := r.db.GetContext(ctx, &created, query,
		user.Username, user.PasswordHash, user.Email, user.Name, user.Surname,
		user.Active, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, &domain.StoreError{Op: "insert user", Err: err}
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoUser
		}
		return nil, &domain.StoreError{Op: "find user by id", Err: err}
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoUser
		}
		return nil, &domain.StoreError{Op: "find user by username", Err: err}
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Surname != nil {
		add("surname", *patch.Surname)
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args))

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoUser
		}
		return nil, &domain.StoreError{Op: "update profile", Err: err}
	}
	return &user, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now().UTC(), id)
	if err != nil {
		return &domain.StoreError{Op: "set active", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNoUser
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return &domain.StoreError{Op: "delete user", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNoUser
	}
	return nil
}

func (r *UserRepository) DeleteInactiveOlderThan(ctx context.Context, days int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE active = FALSE AND updated_at < now() - make_interval(days => $1) AND id <> $2`,
		days, domain.AnonymousID)
	if err != nil {
		return 0, &domain.StoreError{Op: "delete inactive users", Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *UserRepository) List(ctx context.Context, p domain.Pagination) ([]domain.User, error) {
	p = p.Normalized()
	users := []domain.User{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`,
		p.PerPage, (p.Page-1)*p.PerPage)
	if err != nil {
		return nil, &domain.StoreError{Op: "list users", Err: err}
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM users`); err != nil {
		return 0, &domain.StoreError{Op: "count users", Err: err}
	}
	return n, nil
}
