package migrations

import (
	"context"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.User)(nil),
			(*types.Team)(nil),
			(*types.TeamStats)(nil),
			(*types.FlaggedContent)(nil),
			(*types.ModeratorActivity)(nil),
			(*types.Alert)(nil),
			(*types.MonitoredChannel)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.MonitoredChannel)(nil),
			(*types.Alert)(nil),
			(*types.ModeratorActivity)(nil),
			(*types.FlaggedContent)(nil),
			(*types.TeamStats)(nil),
			(*types.Team)(nil),
			(*types.User)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
