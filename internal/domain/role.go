package domain

import "strings"

// Role enumerates employee privilege tiers. The ordering is significant:
// a higher ordinal always means higher privilege, and every privilege
// comparison in the system goes through this total order.
//
// RoleUser doubles as the zero-value sentinel: claims that fail to resolve
// fall back to it, and the command pipeline treats it as unauthenticated.
type Role int

const (
	RoleUser Role = iota
	RoleLeader
	RoleDirector
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleUser:     "User",
	RoleLeader:   "Leader",
	RoleDirector: "Director",
	RoleAdmin:    "Admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "User"
}

// IsValid reports whether r is one of the defined tiers.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// Outranks reports whether r is strictly higher than other in the hierarchy.
func (r Role) Outranks(other Role) bool {
	return r > other
}

// AtLeast reports whether r meets or exceeds the given threshold.
func (r Role) AtLeast(threshold Role) bool {
	return r >= threshold
}

// ParseRole resolves a role name case-insensitively, falling back to RoleUser
// when the value is absent or unrecognized.
func ParseRole(value string) Role {
	for role, name := range roleNames {
		if strings.EqualFold(name, value) {
			return role
		}
	}
	return RoleUser
}
