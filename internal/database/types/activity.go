package types

import (
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

// ModeratorActivity is an append-only audit record of a human action
// taken on content. It is never mutated or deleted.
type ModeratorActivity struct {
	ID          string               `bun:",pk"       json:"id"`
	TenantID    string               `bun:",notnull"  json:"tenantId"`
	ModeratorID string               `bun:",notnull"  json:"moderatorId"`
	Moderator   string               `bun:",notnull"  json:"moderator"`
	Action      enum.ModeratorAction `bun:",notnull"  json:"action"`
	Snippet     string               `bun:",notnull"  json:"content"`
	ContentID   string               `bun:",nullzero" json:"contentId,omitempty"`
	Timestamp   time.Time            `bun:",notnull"  json:"timestamp"`
}
