// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package sec

// # Studio Roles

// UserRole represents the authorization level granted to a studio account.
type UserRole string

const (
	// Full access, including settings.
	RoleAdmin UserRole = "admin"

	// Can create, edit and delete catalog records and run generations.
	RoleEditor UserRole = "editor"

	// Read-only access to the catalog and dashboard.
	RoleViewer UserRole = "viewer"
)

// EffectiveRole returns the role carried by the token. Accounts without a
// role claim are studio editors.
func (c *AuthClaims) EffectiveRole() UserRole {
	if c.Role == "" {
		return RoleEditor
	}
	return UserRole(c.Role)
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
