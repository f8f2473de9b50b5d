package domain

import "time"

// Dream records one sleep interval. ToDate is nil while the baby is still
// asleep; at most one open dream may exist per baby.
type Dream struct {
	ID       int64      `db:"id" json:"id"`
	BabyID   int64      `db:"baby_id" json:"-"`
	FromDate time.Time  `db:"from_date" json:"from_date"`
	ToDate   *time.Time `db:"to_date" json:"to_date,omitempty"`
}

// Open reports whether the dream has not been closed yet.
func (d Dream) Open() bool { return d.ToDate == nil }

// Minutes returns the whole minutes slept, rounded down. An open dream
// contributes zero until it is closed.
func (d Dream) Minutes() int64 {
	if d.ToDate == nil {
		return 0
	}
	return int64(d.ToDate.Sub(d.FromDate).Minutes())
}
