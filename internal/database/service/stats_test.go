package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStatsTest(t *testing.T) (*StatsService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return NewStats(nil, client, zap.NewNop()), mr
}

func TestStatsCacheRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := setupStatsTest(t)
	ctx := t.Context()

	stats := &types.ContentStats{
		TenantID:       "tenant-1",
		TotalFlagged:   120,
		PendingReview:  17,
		AIAccuracy:     92.5,
		HumanOverrides: 7.5,
		Categories: []types.CategoryCount{
			{Category: enum.CategoryHateSpeech, Count: 80, Percentage: 66.7},
			{Category: enum.CategoryThreats, Count: 40, Percentage: 33.3},
		},
	}

	svc.storeStats(ctx, "tenant-1", stats)

	cached := svc.cachedStats(ctx, "tenant-1")
	require.NotNil(t, cached)
	assert.Equal(t, stats, cached)
}

func TestStatsCacheMiss(t *testing.T) {
	t.Parallel()

	svc, _ := setupStatsTest(t)

	assert.Nil(t, svc.cachedStats(t.Context(), "unknown-tenant"))
}

func TestStatsCacheIsTenantScoped(t *testing.T) {
	t.Parallel()

	svc, _ := setupStatsTest(t)
	ctx := t.Context()

	svc.storeStats(ctx, "tenant-1", &types.ContentStats{TenantID: "tenant-1", TotalFlagged: 5})

	assert.Nil(t, svc.cachedStats(ctx, "tenant-2"))
	require.NotNil(t, svc.cachedStats(ctx, "tenant-1"))
}

func TestStatsCacheExpires(t *testing.T) {
	t.Parallel()

	svc, mr := setupStatsTest(t)
	ctx := t.Context()

	svc.storeStats(ctx, "tenant-1", &types.ContentStats{TenantID: "tenant-1", TotalFlagged: 5})
	require.NotNil(t, svc.cachedStats(ctx, "tenant-1"))

	mr.FastForward(ContentStatsTTL + time.Second)

	assert.Nil(t, svc.cachedStats(ctx, "tenant-1"))
}

func TestStatsCacheDisabled(t *testing.T) {
	t.Parallel()

	svc := NewStats(nil, nil, zap.NewNop())
	ctx := t.Context()

	// Without a cache client both paths are no-ops.
	svc.storeStats(ctx, "tenant-1", &types.ContentStats{TenantID: "tenant-1"})
	assert.Nil(t, svc.cachedStats(ctx, "tenant-1"))
}
