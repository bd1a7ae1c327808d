package models

import (
	"context"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActivityModel handles database operations for the moderator audit trail.
type ActivityModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewActivity creates a repository with database access for
// storing and retrieving moderator action records.
func NewActivity(db *bun.DB, logger *zap.Logger) *ActivityModel {
	return &ActivityModel{
		db:     db,
		logger: logger.Named("db_activity"),
	}
}

// GetActivity retrieves a tenant's audit trail, most recent first.
// Audit records are only ever written by the review transaction itself,
// so the trail cannot disagree with the review columns it describes.
func (r *ActivityModel) GetActivity(ctx context.Context, tenantID string, limit int) ([]*types.ModeratorActivity, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ModeratorActivity, error) {
		var activity []*types.ModeratorActivity

		query := r.db.NewSelect().
			Model(&activity).
			Where("tenant_id = ?", tenantID).
			Order("timestamp DESC")

		if limit > 0 {
			query = query.Limit(limit)
		}

		if err := query.Scan(ctx); err != nil {
			return nil, fmt.Errorf("failed to get activity: %w", err)
		}

		return activity, nil
	})
}
