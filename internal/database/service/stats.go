package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/models"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ContentStatsTTL bounds how stale the cached dashboard stats may get.
const ContentStatsTTL = 30 * time.Second

// StatsService computes dashboard statistics, caching the expensive
// aggregate in Redis.
type StatsService struct {
	model  *models.StatsModel
	cache  rueidis.Client
	logger *zap.Logger
}

// NewStats creates a new stats service. The cache client may be nil, in
// which case every call computes from the database.
func NewStats(model *models.StatsModel, cache rueidis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{
		model:  model,
		cache:  cache,
		logger: logger.Named("stats_service"),
	}
}

// GetContentStats returns a tenant's dashboard statistics, served from
// the cache when a fresh copy exists. The underlying aggregates are
// computed concurrently.
func (s *StatsService) GetContentStats(ctx context.Context, tenantID string) (*types.ContentStats, error) {
	if cached := s.cachedStats(ctx, tenantID); cached != nil {
		return cached, nil
	}

	stats := &types.ContentStats{TenantID: tenantID}

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		total, pending, err := s.model.GetContentCounts(ctx, tenantID)
		if err != nil {
			return err
		}

		stats.TotalFlagged = total
		stats.PendingReview = pending

		return nil
	})

	p.Go(func(ctx context.Context) error {
		categories, err := s.model.GetCategoryBreakdown(ctx, tenantID)
		if err != nil {
			return err
		}

		stats.Categories = categories

		return nil
	})

	p.Go(func(ctx context.Context) error {
		reviewed, overrides, err := s.model.GetReviewAgreement(ctx, tenantID)
		if err != nil {
			return err
		}

		if reviewed > 0 {
			stats.HumanOverrides = float64(overrides) / float64(reviewed) * 100
			stats.AIAccuracy = 100 - stats.HumanOverrides
		}

		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute content stats: %w", err)
	}

	s.storeStats(ctx, tenantID, stats)

	return stats, nil
}

// GetFlaggedOverTime returns the daily flagged series for the trailing window.
func (s *StatsService) GetFlaggedOverTime(ctx context.Context, tenantID string, days int) ([]types.DailyCount, error) {
	if days <= 0 {
		days = 30
	}

	series, err := s.model.GetFlaggedOverTime(ctx, tenantID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get flagged series: %w", err)
	}

	return series, nil
}

// GetPlatformBreakdown returns the per-platform flagged distribution.
func (s *StatsService) GetPlatformBreakdown(ctx context.Context, tenantID string) ([]types.PlatformCount, error) {
	breakdown, err := s.model.GetPlatformBreakdown(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform breakdown: %w", err)
	}

	return breakdown, nil
}

// cachedStats returns the cached aggregate if a fresh copy exists.
func (s *StatsService) cachedStats(ctx context.Context, tenantID string) *types.ContentStats {
	if s.cache == nil {
		return nil
	}

	key := statsCacheKey(tenantID)

	data, err := s.cache.Do(ctx, s.cache.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			s.logger.Warn("Failed to read stats cache", zap.Error(err), zap.String("key", key))
		}
		return nil
	}

	stats := new(types.ContentStats)
	if err := sonic.Unmarshal(data, stats); err != nil {
		s.logger.Warn("Failed to decode cached stats", zap.Error(err), zap.String("key", key))
		return nil
	}

	return stats
}

// storeStats writes the aggregate to the cache. Failures only cost the
// next caller a recompute.
func (s *StatsService) storeStats(ctx context.Context, tenantID string, stats *types.ContentStats) {
	if s.cache == nil {
		return
	}

	data, err := sonic.Marshal(stats)
	if err != nil {
		s.logger.Warn("Failed to encode stats for cache", zap.Error(err))
		return
	}

	key := statsCacheKey(tenantID)

	err = s.cache.Do(ctx, s.cache.B().Set().
		Key(key).
		Value(rueidis.BinaryString(data)).
		Ex(ContentStatsTTL).
		Build()).Error()
	if err != nil {
		s.logger.Warn("Failed to write stats cache", zap.Error(err), zap.String("key", key))
	}
}

func statsCacheKey(tenantID string) string {
	return "stats:content:" + tenantID
}
