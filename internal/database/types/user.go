package types

import (
	"errors"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("role is not assignable")
)

// User represents a dashboard account in any approval state.
type User struct {
	ID          string        `bun:",pk"                    json:"id"`
	Email       string        `bun:",notnull"               json:"email"`
	DisplayName string        `bun:",notnull"               json:"displayName"`
	AvatarURL   string        `bun:",notnull"               json:"avatarUrl"`
	Role        enum.UserRole `bun:",notnull"               json:"role"`
	Approved    bool          `bun:",notnull,default:false" json:"approved"`
	Teams       []string      `bun:",array"                 json:"teams"`
	CreatedAt   time.Time     `bun:",notnull"               json:"createdAt"`
	LastLogin   time.Time     `bun:",nullzero"              json:"lastLogin"`
}

// Pending reports whether the user is still awaiting admin approval.
func (u *User) Pending() bool {
	return u.Role == enum.UserRolePending && !u.Approved
}

// UserUpdate lists the mutable fields for the general-purpose admin edit.
// Nil pointers and a nil Teams slice leave the corresponding field
// untouched.
type UserUpdate struct {
	Role     *enum.UserRole
	Approved *bool
	Teams    []string
}
