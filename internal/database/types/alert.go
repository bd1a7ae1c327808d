package types

import (
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

// Alert is a read-only projection of high-priority flagged content,
// surfaced on the dashboard alert feed.
type Alert struct {
	ID        string               `bun:",pk"      json:"id"`
	TenantID  string               `bun:",notnull" json:"tenantId"`
	Platform  enum.Platform        `bun:",notnull" json:"platform"`
	Username  string               `bun:",notnull" json:"username"`
	Snippet   string               `bun:",notnull" json:"content"`
	Category  enum.ContentCategory `bun:",notnull" json:"category"`
	Severity  enum.ContentSeverity `bun:",notnull" json:"severity"`
	Timestamp time.Time            `bun:",notnull" json:"timestamp"`
}
