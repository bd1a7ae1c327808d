package models

import (
	"context"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AlertModel handles database operations for the alert feed.
type AlertModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAlert creates a repository with database access for alert records.
func NewAlert(db *bun.DB, logger *zap.Logger) *AlertModel {
	return &AlertModel{
		db:     db,
		logger: logger.Named("db_alert"),
	}
}

// CreateAlert inserts a new alert projected from high-priority content.
func (r *AlertModel) CreateAlert(ctx context.Context, alert *types.Alert) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(alert).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create alert: %w", err)
		}
		return nil
	})
}

// GetRecentAlerts retrieves a tenant's alerts, most recent first.
func (r *AlertModel) GetRecentAlerts(ctx context.Context, tenantID string, limit int) ([]*types.Alert, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Alert, error) {
		var alerts []*types.Alert

		query := r.db.NewSelect().
			Model(&alerts).
			Where("tenant_id = ?", tenantID).
			Order("timestamp DESC")

		if limit > 0 {
			query = query.Limit(limit)
		}

		if err := query.Scan(ctx); err != nil {
			return nil, fmt.Errorf("failed to get alerts: %w", err)
		}

		return alerts, nil
	})
}
