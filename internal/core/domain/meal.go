package domain

import "time"

// Meal records a single feeding. Quantity is formula volume in millilitres,
// Elapsed is nursing duration in minutes; either may be absent.
type Meal struct {
	ID       int64      `db:"id" json:"id"`
	BabyID   int64      `db:"baby_id" json:"-"`
	Date     time.Time  `db:"date" json:"date"`
	Quantity *int16     `db:"quantity" json:"quantity,omitempty"`
	Elapsed  *int16     `db:"elapsed" json:"elapsed,omitempty"`
}
