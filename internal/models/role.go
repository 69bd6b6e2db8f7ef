package models

// Role is an administrative privilege level. Roles are totally ordered:
// admin < super_admin.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Level returns the rank of the role. Unknown roles rank 0 and never pass
// a gate.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.Level() > 0
}

// ParseRole maps a stored role string to a Role. Anything unrecognised maps
// to the empty role, which has no privileges.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return ""
	}
	return r
}

// Authorize reports whether identity holds at least the required role.
func Authorize(identity *Identity, required Role) bool {
	if identity == nil || !required.Valid() {
		return false
	}
	return identity.Role.Level() >= required.Level()
}
