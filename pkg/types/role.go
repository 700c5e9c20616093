package types

import "github.com/samber/lo"

// Role is a member's role within a single workspace. All authorization
// decisions derive from it.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleConsultant Role = "consultant"
	RoleClient     Role = "client"
	RoleViewer     Role = "viewer"
)

var allRoles = []Role{RoleAdmin, RoleConsultant, RoleClient, RoleViewer}

func (r Role) Valid() bool {
	return lo.Contains(allRoles, r)
}
