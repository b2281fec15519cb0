package auth

import "strings"

// Role is the employee's access level. Roles are strictly ordered:
// every manager capability is also an admin capability.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleEmployee:
		return RoleEmployee, true
	case RoleManager:
		return RoleManager, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// CanManage reports whether the role may review subordinate timesheets.
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Satisfies reports whether the role meets any of the required roles.
func (r Role) Satisfies(required ...Role) bool {
	for _, req := range required {
		if r == req {
			return true
		}
	}
	return false
}

// JoinRoles renders roles as the comma-joined claim string carried in
// access tokens.
func JoinRoles(roles []Role) string {
	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ",")
}

// SplitRoles parses a comma-joined claim string, dropping anything that is
// not a known role.
func SplitRoles(claim string) []Role {
	var roles []Role
	for _, part := range strings.Split(claim, ",") {
		if role, ok := ParseRole(part); ok {
			roles = append(roles, role)
		}
	}
	return roles
}
