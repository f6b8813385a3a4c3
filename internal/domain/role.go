package domain

import "fmt"

// Role is the closed set of application roles carried in auth tokens.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleManager     Role = "manager"
	RoleSupervisor  Role = "supervisor"
)

// ParseRole validates a raw role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleParticipant, RoleManager, RoleSupervisor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// In reports whether the role is a member of the given set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
