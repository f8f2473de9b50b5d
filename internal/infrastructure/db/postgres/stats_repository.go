package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// statsTables is the fixed set of tables reported by the admin stats
// endpoint, in display order.
var statsTables = []string{"users", "babies", "meals", "dreams", "weights"}

// StatsRepository reports row counts for the admin surface.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountTables(ctx context.Context) ([]ports.TableCount, error) {
	counts := make([]ports.TableCount, 0, len(statsTables))
	for _, table := range statsTables {
		var n int64
		// Table names come from the fixed list above, never from input.
		if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM `+table); err != nil {
			return nil, &domain.StoreError{Op: "count " + table, Err: err}
		}
		counts = append(counts, ports.TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
