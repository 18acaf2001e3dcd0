package rbac

import "strings"

// Role is the closed set of portal roles. Legacy aliases are folded into the
// canonical values by Normalize at the identity boundary; nothing past that
// boundary compares raw role strings.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSupervisor  Role = "supervisor"
	RoleParticipant Role = "participant"
)

// Normalize maps an incoming role string (from a signup form, a stored
// profile, or a token claim) to a canonical Role. "pengawas" is a legacy
// alias for supervisor and "user" for participant, both kept for accounts
// created before the enum was closed.
func Normalize(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "supervisor", "pengawas":
		return RoleSupervisor, true
	case "participant", "user":
		return RoleParticipant, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }
