package domain

import (
	"time"

	"github.com/google/uuid"
)

// Baby is an infant tracked by one or more users. The integer id never
// leaves the service boundary; URLs and session payloads carry the UUID.
type Baby struct {
	ID        int64     `db:"id" json:"-"`
	UUID      uuid.UUID `db:"uniqueid" json:"uniqueid"`
	Name      string    `db:"name" json:"name"`
	Birthdate time.Time `db:"birthdate" json:"birthdate"`
	UserID    int64     `db:"userid" json:"-"`
	AddedOn   time.Time `db:"added_on" json:"added_on"`
}
