package domain

import "time"

// User models an account holder. Username is unique and case-sensitive.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Name         *string   `db:"name" json:"name,omitempty"`
	Surname      *string   `db:"surname" json:"surname,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProfilePatch carries the self-service profile fields a user may change.
// Nil fields are left untouched.
type ProfilePatch struct {
	Email   *string
	Name    *string
	Surname *string
}

// Empty reports whether the patch would change nothing.
func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Surname == nil
}
