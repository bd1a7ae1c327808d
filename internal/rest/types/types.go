package types

import (
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterUserRequest creates a pending account.
type RegisterUserRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// ApproveUserRequest grants a role to a pending account.
type ApproveUserRequest struct {
	Role    enum.UserRole `json:"role"`
	TeamIDs []string      `json:"teamIds"`
}

// EditUserRequest applies an admin edit. Absent fields stay untouched.
type EditUserRequest struct {
	Role     *enum.UserRole `json:"role"`
	Approved *bool          `json:"approved"`
	TeamIDs  []string       `json:"teamIds"`
}

// CreateTeamRequest creates a team owned by the creator.
type CreateTeamRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Platforms   []enum.Platform        `json:"platforms"`
	Categories  []enum.ContentCategory `json:"categories"`
	CreatorID   string                 `json:"creatorId"`
}

// UpdateTeamRequest edits a team's descriptive fields.
type UpdateTeamRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Platforms   []enum.Platform        `json:"platforms"`
	Categories  []enum.ContentCategory `json:"categories"`
}

// MemberRequest names the user for a membership change.
type MemberRequest struct {
	UserID string `json:"userId"`
}

// ReviewRequest records a moderator decision on flagged content.
type ReviewRequest struct {
	Decision    enum.ReviewDecision `json:"decision"`
	ModeratorID string              `json:"moderatorId"`
}

// CreateChannelRequest configures a new monitored channel.
type CreateChannelRequest struct {
	Name               string                   `json:"name"`
	Platform           enum.Platform            `json:"platform"`
	ChannelID          string                   `json:"channelId"`
	MonitoringEnabled  *bool                    `json:"monitoringEnabled"`
	ModerationSettings types.ModerationSettings `json:"moderationSettings"`
}

// UpdateChannelRequest edits a monitored channel. Absent fields stay
// untouched.
type UpdateChannelRequest struct {
	Name              *string                   `json:"name"`
	Platform          *enum.Platform            `json:"platform"`
	ChannelID         *string                   `json:"channelId"`
	MonitoringEnabled *bool                     `json:"monitoringEnabled"`
	Settings          *types.ModerationSettings `json:"moderationSettings"`
}
