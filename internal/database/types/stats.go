package types

import (
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

// ContentStats summarizes a tenant's moderation workload for the dashboard.
type ContentStats struct {
	TenantID       string          `json:"tenantId"`
	TotalFlagged   int64           `json:"totalFlagged"`
	PendingReview  int64           `json:"pendingReview"`
	AIAccuracy     float64         `json:"aiAccuracy"`
	HumanOverrides float64         `json:"humanOverrides"`
	Categories     []CategoryCount `json:"categoryBreakdown"`
}

// CategoryCount is one slice of the per-category breakdown.
type CategoryCount struct {
	Category   enum.ContentCategory `json:"category"`
	Count      int64                `json:"count"`
	Percentage float64              `json:"percentage"`
}

// DailyCount is one point of the flagged-over-time series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// PlatformCount is one slice of the per-platform breakdown.
type PlatformCount struct {
	Platform   enum.Platform `json:"platform"`
	Count      int64         `json:"count"`
	Percentage float64       `json:"percentage"`
}
