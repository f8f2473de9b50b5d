package domain

// Role is the stable numeric role encoding shared by session payloads and
// the roles table. Only the numeric id is trusted for authorization; the
// persisted name column is informational.
type Role uint8

const (
	RoleAdmin     Role = 0
	RoleUser      Role = 1
	RoleAnonymous Role = 2
)

// RoleFromID decodes a persisted role id. Unknown ids decode to
// RoleAnonymous so a corrupted row can never grant privileges.
func RoleFromID(id int16) Role {
	switch Role(id) {
	case RoleAdmin, RoleUser, RoleAnonymous:
		return Role(id)
	default:
		return RoleAnonymous
	}
}

// RoleFromName maps a role name to its variant. The boolean reports whether
// the name is known.
func RoleFromName(name string) (Role, bool) {
	switch name {
	case "admin":
		return RoleAdmin, true
	case "user":
		return RoleUser, true
	case "anonymous":
		return RoleAnonymous, true
	default:
		return RoleAnonymous, false
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "anonymous"
	}
}
