package core

// Role is a participant's authority level within a session. Roles form a
// strict order (guest < member < admin < owner); use AtLeast for comparisons
// instead of matching on string values.
type Role string

const (
	// RoleOwner is the top role (called "master" in legacy payloads).
	RoleOwner Role = "owner"
	// RoleAdmin can administer groups and other users.
	RoleAdmin Role = "admin"
	// RoleMember is the default participant role (legacy "user").
	RoleMember Role = "member"
	// RoleGuest has the lowest authority.
	RoleGuest Role = "guest"
)

// rank maps each role to its position in the authority order.
func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r carries at least the authority of other. This is
// the single comparison point for role precedence.
func (r Role) AtLeast(other Role) bool { return r.rank() >= other.rank() }

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

// ParseRole normalizes a caller-supplied role string. Legacy names from
// upstream payloads are accepted ("master" for owner, "user" for member).
// Unknown or empty values fall back to RoleMember.
func ParseRole(s string) Role {
	switch s {
	case "owner", "master":
		return RoleOwner
	case "admin":
		return RoleAdmin
	case "guest":
		return RoleGuest
	default:
		return RoleMember
	}
}
