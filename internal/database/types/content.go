package types

import (
	"errors"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

var (
	ErrContentNotFound        = errors.New("content not found")
	ErrContentAlreadyReviewed = errors.New("content already reviewed")
	ErrInvalidDecision        = errors.New("invalid review decision")
	ErrTenantMismatch         = errors.New("content belongs to another tenant")
)

// FlaggedContent is an item surfaced by the detection pipeline and
// awaiting (or past) human review.
//
// The review outcome fields are unset until a moderator acts and are
// immutable afterwards. TenantID scopes the record for isolation.
type FlaggedContent struct {
	ID          string               `bun:",pk"       json:"id"`
	TenantID    string               `bun:",notnull"  json:"tenantId"`
	Platform    enum.Platform        `bun:",notnull"  json:"platform"`
	Username    string               `bun:",notnull"  json:"username"`
	Body        string               `bun:",notnull"  json:"content"`
	Category    enum.ContentCategory `bun:",notnull"  json:"category"`
	Severity    enum.ContentSeverity `bun:",notnull"  json:"severity"`
	Timestamp   time.Time            `bun:",notnull"  json:"timestamp"`
	Confidence  float64              `bun:",notnull"  json:"confidence"`
	AIDecision  enum.AIDecision      `bun:",notnull"  json:"aiDecision"`
	Explanation string               `bun:",notnull"  json:"explanation"`
	Keywords    []string             `bun:",array"    json:"keywords"`
	ChannelID   string               `bun:",nullzero" json:"channelId,omitempty"`

	ReviewedBy     string              `bun:",nullzero" json:"reviewedBy,omitempty"`
	ReviewedAt     time.Time           `bun:",nullzero" json:"reviewedAt,omitempty"`
	ReviewDecision enum.ReviewDecision `bun:",nullzero" json:"reviewDecision,omitempty"`
}

// Reviewed reports whether a moderator has already acted on the content.
func (c *FlaggedContent) Reviewed() bool {
	return !c.ReviewedAt.IsZero()
}

// SnippetLength is the number of body characters kept in audit records
// and alert feeds.
const SnippetLength = 50

// Snippet truncates a content body for audit records and alert feeds.
// Bodies at or under the limit are returned unchanged.
func Snippet(body string) string {
	runes := []rune(body)
	if len(runes) <= SnippetLength {
		return body
	}
	return string(runes[:SnippetLength]) + "..."
}
