package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Every tenant-scoped collection gets a secondary index on its
		// tenant id, ordered for newest-first feeds.
		_, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS idx_users_pending
			ON users (role, approved)
			WHERE role = 'pending';

			CREATE INDEX IF NOT EXISTS idx_flagged_contents_tenant_pending
			ON flagged_contents (tenant_id, timestamp DESC)
			WHERE reviewed_at IS NULL;

			CREATE INDEX IF NOT EXISTS idx_flagged_contents_tenant_decision
			ON flagged_contents (tenant_id, review_decision, timestamp DESC)
			WHERE reviewed_at IS NOT NULL;

			CREATE INDEX IF NOT EXISTS idx_moderator_activities_tenant_time
			ON moderator_activities (tenant_id, timestamp DESC);

			CREATE INDEX IF NOT EXISTS idx_alerts_tenant_time
			ON alerts (tenant_id, timestamp DESC);

			CREATE INDEX IF NOT EXISTS idx_monitored_channels_tenant
			ON monitored_channels (tenant_id);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_users_pending;
			DROP INDEX IF EXISTS idx_flagged_contents_tenant_pending;
			DROP INDEX IF EXISTS idx_flagged_contents_tenant_decision;
			DROP INDEX IF EXISTS idx_moderator_activities_tenant_time;
			DROP INDEX IF EXISTS idx_alerts_tenant_time;
			DROP INDEX IF EXISTS idx_monitored_channels_tenant;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
