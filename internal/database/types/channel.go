package types

import (
	"errors"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/types/enum"
)

var (
	ErrChannelNotFound     = errors.New("channel not found")
	ErrChannelNameRequired = errors.New("channel name is required")
	ErrChannelIDRequired   = errors.New("external channel id is required")
	ErrInvalidThreshold    = errors.New("auto-remove threshold must be between 0.5 and 1.0")
)

// Threshold bounds for automatic removal.
const (
	MinAutoRemoveThreshold = 0.5
	MaxAutoRemoveThreshold = 1.0
)

// ModerationSettings configures automated handling for a monitored channel.
type ModerationSettings struct {
	AutoRemove          bool                   `json:"autoRemove"`
	AutoRemoveThreshold float64                `json:"autoRemoveThreshold"`
	NotifyOnFlag        bool                   `json:"notifyOnFlag"`
	Categories          []enum.ContentCategory `json:"categories"`
}

// Validate checks the threshold range.
func (s *ModerationSettings) Validate() error {
	if s.AutoRemoveThreshold < MinAutoRemoveThreshold || s.AutoRemoveThreshold > MaxAutoRemoveThreshold {
		return fmt.Errorf("%w: got %.2f", ErrInvalidThreshold, s.AutoRemoveThreshold)
	}
	return nil
}

// MonitoredChannel is a channel the owning tenant watches for violations.
type MonitoredChannel struct {
	ID                 string             `bun:",pk"                   json:"id"`
	TenantID           string             `bun:",notnull"              json:"tenantId"`
	Name               string             `bun:",notnull"              json:"name"`
	Platform           enum.Platform      `bun:",notnull"              json:"platform"`
	ChannelID          string             `bun:",notnull"              json:"channelId"`
	MonitoringEnabled  bool               `bun:",notnull,default:true" json:"monitoringEnabled"`
	ModerationSettings ModerationSettings `bun:"type:jsonb,notnull"    json:"moderationSettings"`
}

// Validate checks the create-time required fields and settings.
func (c *MonitoredChannel) Validate() error {
	if c.Name == "" {
		return ErrChannelNameRequired
	}
	if c.ChannelID == "" {
		return ErrChannelIDRequired
	}
	return c.ModerationSettings.Validate()
}

// ChannelUpdate lists the mutable channel fields. Nil pointers leave the
// corresponding field untouched.
type ChannelUpdate struct {
	Name              *string
	Platform          *enum.Platform
	ChannelID         *string
	MonitoringEnabled *bool
	Settings          *ModerationSettings
}
