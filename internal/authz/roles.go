package authz

import "strings"

// Role discriminates the two account classes. Stored lowercase in the DB
// and carried as a JWT claim.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanAccessLead: admins see everything, employees only leads assigned to them.
func CanAccessLead(actorID int, role Role, leadEmployeeID *int) bool {
	if role == RoleAdmin {
		return true
	}
	return leadEmployeeID != nil && *leadEmployeeID == actorID
}
