package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// RoleRepository persists the user↔role join. Role ids are the stable
// numeric encoding; the name column is informational only.
type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Add(ctx context.Context, userID int64, role domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, int16(role))
	if err != nil {
		return &domain.StoreError{Op: "add role", Err: err}
	}
	return nil
}

func (r *RoleRepository) Remove(ctx context.Context, userID int64, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users_roles WHERE user_id = $1 AND role_id = $2`, userID, int16(role))
	if err != nil {
		return &domain.StoreError{Op: "remove role", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNoEntryFound
	}
	return nil
}

func (r *RoleRepository) ListRoleIDs(ctx context.Context, userID int64) ([]domain.Role, error) {
	ids := []int16{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT role_id FROM users_roles WHERE user_id = $1 ORDER BY role_id`, userID)
	if err != nil {
		return nil, &domain.StoreError{Op: "list role ids", Err: err}
	}

	roles := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		roles = append(roles, domain.RoleFromID(id))
	}
	return roles, nil
}

func (r *RoleRepository) GroupedCounts(ctx context.Context) ([]ports.RoleCount, error) {
	rows := []struct {
		ID    int16  `db:"id"`
		Name  string `db:"name"`
		Users int64  `db:"users"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT r.id, r.name, count(ur.user_id) AS users
			FROM roles r LEFT JOIN users_roles ur ON ur.role_id = r.id
			GROUP BY r.id, r.name ORDER BY r.id`)
	if err != nil {
		return nil, &domain.StoreError{Op: "grouped role counts", Err: err}
	}

	counts := make([]ports.RoleCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.RoleCount{
			Role:  domain.RoleFromID(row.ID),
			Name:  row.Name,
			Users: row.Users,
		})
	}
	return counts, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (domain.Role, error) {
	var id int16
	err := r.db.GetContext(ctx, &id, `SELECT id FROM roles WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RoleAnonymous, domain.ErrNoEntryFound
		}
		return domain.RoleAnonymous, &domain.StoreError{Op: "find role by name", Err: err}
	}
	return domain.RoleFromID(id), nil
}
