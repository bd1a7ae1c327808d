package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ChannelModel handles database operations for monitored channels.
type ChannelModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewChannel creates a repository with database access for channel records.
func NewChannel(db *bun.DB, logger *zap.Logger) *ChannelModel {
	return &ChannelModel{
		db:     db,
		logger: logger.Named("db_channel"),
	}
}

// GetChannels retrieves a tenant's monitored channels.
func (r *ChannelModel) GetChannels(ctx context.Context, tenantID string) ([]*types.MonitoredChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.MonitoredChannel, error) {
		var channels []*types.MonitoredChannel

		err := r.db.NewSelect().
			Model(&channels).
			Where("tenant_id = ?", tenantID).
			Order("name ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get channels: %w", err)
		}

		return channels, nil
	})
}

// GetChannel retrieves one monitored channel, scoped to its tenant.
func (r *ChannelModel) GetChannel(ctx context.Context, channelID, tenantID string) (*types.MonitoredChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.MonitoredChannel, error) {
		channel := new(types.MonitoredChannel)

		err := r.db.NewSelect().
			Model(channel).
			Where("id = ?", channelID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrChannelNotFound
			}
			return nil, fmt.Errorf("failed to get channel: %w", err)
		}

		if channel.TenantID != tenantID {
			return nil, types.ErrTenantMismatch
		}

		return channel, nil
	})
}

// GetChannelByExternalID finds the tenant's channel matching an external
// platform channel id, if one is configured.
func (r *ChannelModel) GetChannelByExternalID(
	ctx context.Context, tenantID, externalID string,
) (*types.MonitoredChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.MonitoredChannel, error) {
		channel := new(types.MonitoredChannel)

		err := r.db.NewSelect().
			Model(channel).
			Where("tenant_id = ?", tenantID).
			Where("channel_id = ?", externalID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrChannelNotFound
			}
			return nil, fmt.Errorf("failed to get channel by external id: %w", err)
		}

		return channel, nil
	})
}

// CreateChannel inserts a new monitored channel.
func (r *ChannelModel) CreateChannel(ctx context.Context, channel *types.MonitoredChannel) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(channel).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create channel: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Created channel",
		zap.String("channelID", channel.ID),
		zap.String("tenantID", channel.TenantID))

	return nil
}

// UpdateChannel applies the given partial update within the tenant scope
// and returns the updated channel.
func (r *ChannelModel) UpdateChannel(
	ctx context.Context, channelID, tenantID string, update *types.ChannelUpdate,
) (*types.MonitoredChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.MonitoredChannel, error) {
		channel := new(types.MonitoredChannel)

		query := r.db.NewUpdate().
			Model(channel).
			Where("id = ?", channelID).
			Where("tenant_id = ?", tenantID).
			Returning("*")

		if update.Name != nil {
			query = query.Set("name = ?", *update.Name)
		}
		if update.Platform != nil {
			query = query.Set("platform = ?", *update.Platform)
		}
		if update.ChannelID != nil {
			query = query.Set("channel_id = ?", *update.ChannelID)
		}
		if update.MonitoringEnabled != nil {
			query = query.Set("monitoring_enabled = ?", *update.MonitoringEnabled)
		}
		if update.Settings != nil {
			query = query.Set("moderation_settings = ?", update.Settings)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update channel: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, types.ErrChannelNotFound
		}

		return channel, nil
	})
}

// DeleteChannel removes a monitored channel within the tenant scope.
func (r *ChannelModel) DeleteChannel(ctx context.Context, channelID, tenantID string) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := r.db.NewDelete().
			Model((*types.MonitoredChannel)(nil)).
			Where("id = ?", channelID).
			Where("tenant_id = ?", tenantID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete channel: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return types.ErrChannelNotFound
		}

		return nil
	})
}
