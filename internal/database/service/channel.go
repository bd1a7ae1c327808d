package service

import (
	"context"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/models"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChannelService handles monitored channel configuration.
type ChannelService struct {
	model  *models.ChannelModel
	logger *zap.Logger
}

// NewChannel creates a new channel service.
func NewChannel(model *models.ChannelModel, logger *zap.Logger) *ChannelService {
	return &ChannelService{
		model:  model,
		logger: logger.Named("channel_service"),
	}
}

// AddChannel validates and stores a new monitored channel for a tenant.
func (s *ChannelService) AddChannel(ctx context.Context, channel *types.MonitoredChannel) (*types.MonitoredChannel, error) {
	if channel.ID == "" {
		channel.ID = uuid.New().String()
	}

	if err := channel.Validate(); err != nil {
		return nil, err
	}

	if err := s.model.CreateChannel(ctx, channel); err != nil {
		return nil, fmt.Errorf("failed to add channel: %w", err)
	}

	s.logger.Info("Added monitored channel",
		zap.String("channelID", channel.ID),
		zap.String("tenantID", channel.TenantID),
		zap.String("platform", string(channel.Platform)))

	return channel, nil
}

// UpdateChannel validates and applies a partial edit to a monitored channel.
func (s *ChannelService) UpdateChannel(
	ctx context.Context, channelID, tenantID string, update *types.ChannelUpdate,
) (*types.MonitoredChannel, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, types.ErrChannelNameRequired
	}
	if update.ChannelID != nil && *update.ChannelID == "" {
		return nil, types.ErrChannelIDRequired
	}
	if update.Settings != nil {
		if err := update.Settings.Validate(); err != nil {
			return nil, err
		}
	}

	channel, err := s.model.UpdateChannel(ctx, channelID, tenantID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}

	return channel, nil
}

// RemoveChannel deletes a tenant's monitored channel.
func (s *ChannelService) RemoveChannel(ctx context.Context, channelID, tenantID string) error {
	if err := s.model.DeleteChannel(ctx, channelID, tenantID); err != nil {
		return fmt.Errorf("failed to remove channel: %w", err)
	}

	s.logger.Info("Removed monitored channel",
		zap.String("channelID", channelID),
		zap.String("tenantID", tenantID))

	return nil
}
