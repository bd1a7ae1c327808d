package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SystemModeratorID is recorded as the reviewer when a channel's
// auto-remove rule decides content without a human in the loop.
const SystemModeratorID = "system"

// contentStore is the slice of the content model the service depends on.
type contentStore interface {
	CreateContent(ctx context.Context, content *types.FlaggedContent) error
	ReviewContent(ctx context.Context, contentID string, decision enum.ReviewDecision, moderatorID string) (*types.FlaggedContent, error)
}

// channelFinder resolves the monitored channel an ingested item belongs to.
type channelFinder interface {
	GetChannelByExternalID(ctx context.Context, tenantID, externalID string) (*types.MonitoredChannel, error)
}

// alertStore records alert projections of high-priority flags.
type alertStore interface {
	CreateAlert(ctx context.Context, alert *types.Alert) error
}

// reviewCounter bumps a team's review counters.
type reviewCounter interface {
	IncrementReviewStats(ctx context.Context, teamID string, removed bool) error
}

// moderatorDirectory resolves reviewer accounts for stats attribution.
type moderatorDirectory interface {
	GetUser(ctx context.Context, userID string) (*types.User, error)
}

// ContentService handles ingest and review business logic for flagged content.
type ContentService struct {
	model   contentStore
	channel channelFinder
	alert   alertStore
	team    reviewCounter
	user    moderatorDirectory
	logger  *zap.Logger
}

// NewContent creates a new content service.
func NewContent(
	model contentStore,
	channel channelFinder,
	alert alertStore,
	team reviewCounter,
	user moderatorDirectory,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		model:   model,
		channel: channel,
		alert:   alert,
		team:    team,
		user:    user,
		logger:  logger.Named("content_service"),
	}
}

// IngestContent stores a flagged item from the detection pipeline and
// applies the monitored channel's moderation settings: auto-removal when
// the AI confidence clears the channel threshold, and an alert when the
// channel wants notification on high-priority flags.
func (s *ContentService) IngestContent(ctx context.Context, content *types.FlaggedContent) (*types.FlaggedContent, error) {
	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	if content.Timestamp.IsZero() {
		content.Timestamp = time.Now()
	}

	if err := s.model.CreateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to ingest content: %w", err)
	}

	settings := s.channelSettings(ctx, content)
	if settings == nil {
		return content, nil
	}

	if settings.NotifyOnFlag && content.Severity.HighPriority() {
		alert := &types.Alert{
			ID:        uuid.New().String(),
			TenantID:  content.TenantID,
			Platform:  content.Platform,
			Username:  content.Username,
			Snippet:   types.Snippet(content.Body),
			Category:  content.Category,
			Severity:  content.Severity,
			Timestamp: content.Timestamp,
		}
		if err := s.alert.CreateAlert(ctx, alert); err != nil {
			// The item itself is already stored, losing the alert
			// projection is not worth failing the ingest.
			s.logger.Error("Failed to raise alert for flagged content",
				zap.Error(err),
				zap.String("contentID", content.ID))
		}
	}

	if settings.AutoRemove && content.Confidence >= settings.AutoRemoveThreshold {
		reviewed, err := s.model.ReviewContent(ctx, content.ID, enum.ReviewDecisionRemove, SystemModeratorID)
		if err != nil {
			s.logger.Error("Failed to auto-remove flagged content",
				zap.Error(err),
				zap.String("contentID", content.ID))
			return content, nil
		}

		s.logger.Info("Auto-removed flagged content",
			zap.String("contentID", content.ID),
			zap.Float64("confidence", content.Confidence),
			zap.Float64("threshold", settings.AutoRemoveThreshold))

		return reviewed, nil
	}

	return content, nil
}

// channelSettings resolves the moderation settings that apply to an
// ingested item, or nil when no enabled channel matches.
func (s *ContentService) channelSettings(ctx context.Context, content *types.FlaggedContent) *types.ModerationSettings {
	if content.ChannelID == "" {
		return nil
	}

	channel, err := s.channel.GetChannelByExternalID(ctx, content.TenantID, content.ChannelID)
	if err != nil {
		if !errors.Is(err, types.ErrChannelNotFound) {
			s.logger.Error("Failed to resolve channel for ingest",
				zap.Error(err),
				zap.String("channelID", content.ChannelID))
		}
		return nil
	}

	if !channel.MonitoringEnabled {
		return nil
	}

	settings := channel.ModerationSettings
	if len(settings.Categories) > 0 && !containsCategory(settings.Categories, content.Category) {
		return nil
	}

	return &settings
}

// ReviewContent records a moderator's decision and bumps the review
// counters of every team the moderator belongs to. Counter updates are
// best effort, the decision itself is what must not be lost.
func (s *ContentService) ReviewContent(
	ctx context.Context, contentID string, decision enum.ReviewDecision, moderatorID string,
) (*types.FlaggedContent, error) {
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidDecision, decision)
	}

	content, err := s.model.ReviewContent(ctx, contentID, decision, moderatorID)
	if err != nil {
		return nil, err
	}

	s.recordTeamReviews(ctx, moderatorID, decision == enum.ReviewDecisionRemove)

	return content, nil
}

// recordTeamReviews bumps stats for every team the moderator is on.
func (s *ContentService) recordTeamReviews(ctx context.Context, moderatorID string, removed bool) {
	moderator, err := s.user.GetUser(ctx, moderatorID)
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			s.logger.Error("Failed to load moderator for team stats",
				zap.Error(err),
				zap.String("moderatorID", moderatorID))
		}
		return
	}

	for _, teamID := range moderator.Teams {
		if err := s.team.IncrementReviewStats(ctx, teamID, removed); err != nil {
			s.logger.Error("Failed to increment team review stats",
				zap.Error(err),
				zap.String("teamID", teamID))
		}
	}
}

func containsCategory(categories []enum.ContentCategory, category enum.ContentCategory) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}

	return false
}
