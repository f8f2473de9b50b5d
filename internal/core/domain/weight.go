package domain

import (
	"math"
	"time"
)

// Weight records a measurement for a calendar day.
type Weight struct {
	ID     int64     `db:"id" json:"id"`
	BabyID int64     `db:"baby_id" json:"-"`
	Date   time.Time `db:"date" json:"date"`
	Value  float64   `db:"value" json:"value"`
}

// ClampWeight truncates a measurement to three decimals.
func ClampWeight(v float64) float64 {
	return math.Trunc(v*1000) / 1000
}

// WeightPatch carries the mutable fields of a weight row. Nil fields are
// left untouched.
type WeightPatch struct {
	Date  *time.Time
	Value *float64
}

func (p WeightPatch) Empty() bool { return p.Date == nil && p.Value == nil }
