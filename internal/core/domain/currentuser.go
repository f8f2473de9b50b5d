package domain

import (
	"slices"

	"github.com/google/uuid"
)

// AnonymousID is the reserved user id for the guest principal. The users
// table carries a matching row so foreign keys stay honest, but the guest
// projection is never built from storage.
const AnonymousID int64 = 1

// GuestUsername is the username rendered for anonymous sessions.
const GuestUsername = "guest"

// CurrentUser is the cached identity projection consulted on every
// protected request. The JSON shape doubles as the session store payload.
type CurrentUser struct {
	ID        int64       `json:"id"`
	Anonymous bool        `json:"anonymous"`
	Username  string      `json:"username"`
	Roles     []Role      `json:"roles"`
	Active    bool        `json:"active"`
	Babies    []uuid.UUID `json:"baby_id"`
}

// Guest returns the constant anonymous projection.
func Guest() CurrentUser {
	return CurrentUser{
		ID:        AnonymousID,
		Anonymous: true,
		Username:  GuestUsername,
		Roles:     []Role{RoleAnonymous},
		Active:    true,
		Babies:    []uuid.UUID{},
	}
}

// HasRole reports whether the projection carries the given role.
func (u CurrentUser) HasRole(r Role) bool {
	return slices.Contains(u.Roles, r)
}

// IsAdmin reports whether the projection carries the admin role.
func (u CurrentUser) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// HasBaby reports whether the projection owns (or was shared) the baby.
func (u CurrentUser) HasBaby(id uuid.UUID) bool {
	return slices.Contains(u.Babies, id)
}
