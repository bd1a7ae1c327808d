package enum

// UserRole represents the access level of a dashboard user.
//
// Roles are stored as their wire value so the database and API share one
// representation.
type UserRole string

const (
	// UserRoleAdmin can manage users, teams, and settings.
	UserRoleAdmin UserRole = "admin"
	// UserRoleModerator can review flagged content.
	UserRoleModerator UserRole = "moderator"
	// UserRolePending is the sign-up state before an admin acts.
	UserRolePending UserRole = "pending"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleModerator, UserRolePending:
		return true
	default:
		return false
	}
}

// Assignable reports whether the role can be granted during approval.
// Pending is a lifecycle state, not a grantable role.
func (r UserRole) Assignable() bool {
	return r == UserRoleAdmin || r == UserRoleModerator
}
