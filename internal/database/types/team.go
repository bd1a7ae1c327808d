package types

import (
	"errors"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameRequired = errors.New("team name is required")
)

// Team represents a moderation team and its membership.
// Members is an unordered set of user IDs; the creator is always an
// initial member.
type Team struct {
	ID          string                 `bun:",pk"      json:"id"`
	Name        string                 `bun:",notnull" json:"name"`
	Description string                 `bun:",notnull" json:"description"`
	CreatedBy   string                 `bun:",notnull" json:"createdBy"`
	CreatedAt   time.Time              `bun:",notnull" json:"createdAt"`
	Members     []string               `bun:",array"   json:"members"`
	Platforms   []enum.Platform        `bun:",array"   json:"platforms"`
	Categories  []enum.ContentCategory `bun:",array"   json:"categories"`

	Stats *TeamStats `bun:"rel:has-one,join:id=team_id" json:"stats,omitempty"`
}

// TeamStats tracks aggregate review counters for a team.
type TeamStats struct {
	TeamID              string `bun:",pk"                json:"teamId"`
	ContentReviewed     int64  `bun:",notnull,default:0" json:"contentReviewed"`
	ContentRemoved      int64  `bun:",notnull,default:0" json:"contentRemoved"`
	AvgResponseMinutes  int64  `bun:",notnull,default:0" json:"averageResponseTime"`
}

// TeamMember is a team membership entry resolved against the user table.
type TeamMember struct {
	UserID      string        `json:"userId"`
	DisplayName string        `json:"displayName"`
	Email       string        `json:"email"`
	AvatarURL   string        `json:"avatarUrl"`
	Role        enum.UserRole `json:"role"`
}

// TeamUpdate lists the mutable team fields. Nil pointers and nil slices
// leave the corresponding field untouched.
type TeamUpdate struct {
	Name        *string
	Description *string
	Platforms   []enum.Platform
	Categories  []enum.ContentCategory
}
