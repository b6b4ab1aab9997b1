package domain

import "slices"

// Role is the account kind a user registered as
type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
)

// KnownRoles lists the roles the clients know how to render
var KnownRoles = []Role{RoleUser, RoleDoctor}

// IsKnown reports whether r is one of KnownRoles. Registration does not
// reject unknown roles; callers decide what to do with them.
func (r Role) IsKnown() bool {
	return slices.Contains(KnownRoles, r)
}

func (r Role) String() string {
	return string(r)
}
