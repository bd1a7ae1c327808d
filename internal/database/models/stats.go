package models

import (
	"context"
	"fmt"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// StatsModel computes dashboard aggregates over flagged content.
type StatsModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewStats creates a repository for aggregate queries.
func NewStats(db *bun.DB, logger *zap.Logger) *StatsModel {
	return &StatsModel{
		db:     db,
		logger: logger.Named("db_stats"),
	}
}

// GetContentCounts returns the total flagged and pending review counts
// for a tenant.
func (r *StatsModel) GetContentCounts(ctx context.Context, tenantID string) (total, pending int64, err error) {
	type counts struct {
		Total   int64 `bun:"total"`
		Pending int64 `bun:"pending"`
	}

	result, err := dbretry.Operation(ctx, func(ctx context.Context) (*counts, error) {
		c := new(counts)

		err := r.db.NewSelect().
			Model((*types.FlaggedContent)(nil)).
			ColumnExpr("count(*) AS total").
			ColumnExpr("count(*) FILTER (WHERE reviewed_at IS NULL) AS pending").
			Where("tenant_id = ?", tenantID).
			Scan(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to get content counts: %w", err)
		}

		return c, nil
	})
	if err != nil {
		return 0, 0, err
	}

	return result.Total, result.Pending, nil
}

// GetCategoryBreakdown returns flagged counts per category for a tenant,
// largest first.
func (r *StatsModel) GetCategoryBreakdown(ctx context.Context, tenantID string) ([]types.CategoryCount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]types.CategoryCount, error) {
		var breakdown []types.CategoryCount

		err := r.db.NewSelect().
			Model((*types.FlaggedContent)(nil)).
			ColumnExpr("category").
			ColumnExpr("count(*) AS count").
			Where("tenant_id = ?", tenantID).
			GroupExpr("category").
			OrderExpr("count DESC").
			Scan(ctx, &breakdown)
		if err != nil {
			return nil, fmt.Errorf("failed to get category breakdown: %w", err)
		}

		fillPercentages(breakdown)

		return breakdown, nil
	})
}

// GetReviewAgreement returns, for a tenant, how many reviewed items exist
// and how many of those overrode the AI decision.
func (r *StatsModel) GetReviewAgreement(ctx context.Context, tenantID string) (reviewed, overrides int64, err error) {
	type agreement struct {
		Reviewed  int64 `bun:"reviewed"`
		Overrides int64 `bun:"overrides"`
	}

	result, err := dbretry.Operation(ctx, func(ctx context.Context) (*agreement, error) {
		a := new(agreement)

		err := r.db.NewSelect().
			Model((*types.FlaggedContent)(nil)).
			ColumnExpr("count(*) AS reviewed").
			ColumnExpr(`count(*) FILTER (WHERE
				(ai_decision = 'Remove' AND review_decision = 'approve') OR
				(ai_decision = 'Approve' AND review_decision = 'remove')) AS overrides`).
			Where("tenant_id = ?", tenantID).
			Where("reviewed_at IS NOT NULL").
			Scan(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("failed to get review agreement: %w", err)
		}

		return a, nil
	})
	if err != nil {
		return 0, 0, err
	}

	return result.Reviewed, result.Overrides, nil
}

// GetFlaggedOverTime returns daily flagged counts for the trailing window.
func (r *StatsModel) GetFlaggedOverTime(ctx context.Context, tenantID string, days int) ([]types.DailyCount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]types.DailyCount, error) {
		var series []types.DailyCount

		since := time.Now().AddDate(0, 0, -days)

		err := r.db.NewSelect().
			Model((*types.FlaggedContent)(nil)).
			ColumnExpr("to_char(date_trunc('day', timestamp), 'YYYY-MM-DD') AS date").
			ColumnExpr("count(*) AS count").
			Where("tenant_id = ?", tenantID).
			Where("timestamp >= ?", since).
			GroupExpr("date_trunc('day', timestamp)").
			OrderExpr("date_trunc('day', timestamp) ASC").
			Scan(ctx, &series)
		if err != nil {
			return nil, fmt.Errorf("failed to get flagged over time: %w", err)
		}

		return series, nil
	})
}

// GetPlatformBreakdown returns flagged counts per platform for a tenant,
// largest first.
func (r *StatsModel) GetPlatformBreakdown(ctx context.Context, tenantID string) ([]types.PlatformCount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]types.PlatformCount, error) {
		var breakdown []types.PlatformCount

		err := r.db.NewSelect().
			Model((*types.FlaggedContent)(nil)).
			ColumnExpr("platform").
			ColumnExpr("count(*) AS count").
			Where("tenant_id = ?", tenantID).
			GroupExpr("platform").
			OrderExpr("count DESC").
			Scan(ctx, &breakdown)
		if err != nil {
			return nil, fmt.Errorf("failed to get platform breakdown: %w", err)
		}

		var total int64
		for _, p := range breakdown {
			total += p.Count
		}
		for i := range breakdown {
			if total > 0 {
				breakdown[i].Percentage = float64(breakdown[i].Count) / float64(total) * 100
			}
		}

		return breakdown, nil
	})
}

// fillPercentages derives each category's share of the total.
func fillPercentages(breakdown []types.CategoryCount) {
	var total int64
	for _, c := range breakdown {
		total += c.Count
	}

	if total == 0 {
		return
	}

	for i := range breakdown {
		breakdown[i].Percentage = float64(breakdown[i].Count) / float64(total) * 100
	}
}
