package workflow

import "github.com/google/uuid"

// Role names recognized by the transition table.
const (
	RoleAdmin   = "admin"
	RoleKasi    = "kasi"
	RoleKaCDK   = "kacdk"
	RolePetugas = "petugas"
)

// Actor is the identity a workflow decision is evaluated against. It is
// built once per request from the authenticated user's roles and
// permissions; the engine only ever reads it.
type Actor struct {
	ID          uuid.UUID
	Roles       []string
	Permissions []string
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) HasPermission(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor bypasses role and permission checks.
// Admins never bypass state preconditions.
func (a Actor) IsAdmin() bool { return a.HasRole(RoleAdmin) }
