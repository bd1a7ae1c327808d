package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewCall struct {
	contentID   string
	decision    enum.ReviewDecision
	moderatorID string
}

type fakeContentStore struct {
	created   []*types.FlaggedContent
	reviews   []reviewCall
	reviewErr error
}

func (f *fakeContentStore) CreateContent(_ context.Context, content *types.FlaggedContent) error {
	f.created = append(f.created, content)
	return nil
}

func (f *fakeContentStore) ReviewContent(
	_ context.Context, contentID string, decision enum.ReviewDecision, moderatorID string,
) (*types.FlaggedContent, error) {
	f.reviews = append(f.reviews, reviewCall{contentID: contentID, decision: decision, moderatorID: moderatorID})
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}

	return &types.FlaggedContent{
		ID:             contentID,
		ReviewedBy:     moderatorID,
		ReviewedAt:     time.Now(),
		ReviewDecision: decision,
	}, nil
}

type fakeChannelFinder struct {
	channel *types.MonitoredChannel
}

func (f *fakeChannelFinder) GetChannelByExternalID(
	_ context.Context, tenantID, externalID string,
) (*types.MonitoredChannel, error) {
	if f.channel == nil || f.channel.TenantID != tenantID || f.channel.ChannelID != externalID {
		return nil, types.ErrChannelNotFound
	}
	return f.channel, nil
}

type fakeAlertStore struct {
	alerts []*types.Alert
}

func (f *fakeAlertStore) CreateAlert(_ context.Context, alert *types.Alert) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

type counterCall struct {
	teamID  string
	removed bool
}

type fakeReviewCounter struct {
	calls []counterCall
}

func (f *fakeReviewCounter) IncrementReviewStats(_ context.Context, teamID string, removed bool) error {
	f.calls = append(f.calls, counterCall{teamID: teamID, removed: removed})
	return nil
}

type fakeModeratorDirectory struct {
	user *types.User
}

func (f *fakeModeratorDirectory) GetUser(_ context.Context, userID string) (*types.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, types.ErrUserNotFound
	}
	return f.user, nil
}

type contentFakes struct {
	store   *fakeContentStore
	channel *fakeChannelFinder
	alert   *fakeAlertStore
	counter *fakeReviewCounter
	users   *fakeModeratorDirectory
}

func setupContentTest(t *testing.T) (*ContentService, *contentFakes) {
	t.Helper()

	fakes := &contentFakes{
		store:   &fakeContentStore{},
		channel: &fakeChannelFinder{},
		alert:   &fakeAlertStore{},
		counter: &fakeReviewCounter{},
		users:   &fakeModeratorDirectory{},
	}

	svc := NewContent(fakes.store, fakes.channel, fakes.alert, fakes.counter, fakes.users, zap.NewNop())

	return svc, fakes
}

func monitoredChannel(settings types.ModerationSettings) *types.MonitoredChannel {
	return &types.MonitoredChannel{
		ID:                 "chan-1",
		TenantID:           "tenant-1",
		Name:               "general",
		Platform:           enum.PlatformTwitter,
		ChannelID:          "ext-1",
		MonitoringEnabled:  true,
		ModerationSettings: settings,
	}
}

func flaggedItem() *types.FlaggedContent {
	return &types.FlaggedContent{
		ID:         "content-1",
		TenantID:   "tenant-1",
		Platform:   enum.PlatformTwitter,
		Username:   "troll42",
		Body:       "some harmful message",
		Category:   enum.CategoryHateSpeech,
		Severity:   enum.SeverityHigh,
		Confidence: 0.95,
		ChannelID:  "ext-1",
	}
}

func TestIngestContentAppliesDefaults(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)

	content := flaggedItem()
	content.ID = ""
	content.ChannelID = ""

	stored, err := svc.IngestContent(t.Context(), content)
	require.NoError(t, err)

	require.Len(t, fakes.store.created, 1)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())
	assert.Empty(t, fakes.store.reviews)
	assert.Empty(t, fakes.alert.alerts)
}

func TestIngestContentAutoRemovesAtThreshold(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.channel.channel = monitoredChannel(types.ModerationSettings{
		AutoRemove:          true,
		AutoRemoveThreshold: 0.9,
	})

	content := flaggedItem()
	content.Confidence = 0.9

	stored, err := svc.IngestContent(t.Context(), content)
	require.NoError(t, err)

	require.Len(t, fakes.store.reviews, 1)
	call := fakes.store.reviews[0]
	assert.Equal(t, content.ID, call.contentID)
	assert.Equal(t, enum.ReviewDecisionRemove, call.decision)
	assert.Equal(t, SystemModeratorID, call.moderatorID)
	assert.True(t, stored.Reviewed())
}

func TestIngestContentKeepsBelowThreshold(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.channel.channel = monitoredChannel(types.ModerationSettings{
		AutoRemove:          true,
		AutoRemoveThreshold: 0.9,
	})

	content := flaggedItem()
	content.Confidence = 0.89

	stored, err := svc.IngestContent(t.Context(), content)
	require.NoError(t, err)

	assert.Empty(t, fakes.store.reviews)
	assert.False(t, stored.Reviewed())
}

func TestIngestContentAlertsOnHighPriorityFlags(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.channel.channel = monitoredChannel(types.ModerationSettings{
		NotifyOnFlag:        true,
		AutoRemoveThreshold: 0.9,
	})

	content := flaggedItem()
	content.Body = strings.Repeat("x", 80)

	_, err := svc.IngestContent(t.Context(), content)
	require.NoError(t, err)

	require.Len(t, fakes.alert.alerts, 1)
	alert := fakes.alert.alerts[0]
	assert.Equal(t, "tenant-1", alert.TenantID)
	assert.Equal(t, types.Snippet(content.Body), alert.Snippet)
	assert.Equal(t, enum.SeverityHigh, alert.Severity)
}

func TestIngestContentSkipsAlertForLowSeverity(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.channel.channel = monitoredChannel(types.ModerationSettings{
		NotifyOnFlag:        true,
		AutoRemoveThreshold: 0.9,
	})

	content := flaggedItem()
	content.Severity = enum.SeverityMedium

	_, err := svc.IngestContent(t.Context(), content)
	require.NoError(t, err)

	assert.Empty(t, fakes.alert.alerts)
}

func TestIngestContentHonorsCategoryFilter(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.channel.channel = monitoredChannel(types.ModerationSettings{
		AutoRemove:          true,
		AutoRemoveThreshold: 0.9,
		NotifyOnFlag:        true,
		Categories:          []enum.ContentCategory{enum.CategoryThreats},
	})

	content := flaggedItem()

	_, err := svc.IngestContent(t.Context(), content)
	require.NoError(t, err)

	assert.Empty(t, fakes.store.reviews)
	assert.Empty(t, fakes.alert.alerts)
}

func TestIngestContentSkipsDisabledChannel(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.channel.channel = monitoredChannel(types.ModerationSettings{
		AutoRemove:          true,
		AutoRemoveThreshold: 0.5,
		NotifyOnFlag:        true,
	})
	fakes.channel.channel.MonitoringEnabled = false

	_, err := svc.IngestContent(t.Context(), flaggedItem())
	require.NoError(t, err)

	assert.Empty(t, fakes.store.reviews)
	assert.Empty(t, fakes.alert.alerts)
}

func TestReviewContentRejectsInvalidDecision(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)

	_, err := svc.ReviewContent(t.Context(), "content-1", enum.ReviewDecision("escalate"), "mod-1")
	require.ErrorIs(t, err, types.ErrInvalidDecision)
	assert.Empty(t, fakes.store.reviews)
}

func TestReviewContentRejectsSecondDecision(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.store.reviewErr = types.ErrContentAlreadyReviewed

	_, err := svc.ReviewContent(t.Context(), "content-1", enum.ReviewDecisionApprove, "mod-1")
	require.ErrorIs(t, err, types.ErrContentAlreadyReviewed)

	// The failed decision must not leak into team counters.
	assert.Empty(t, fakes.counter.calls)
}

func TestReviewContentBumpsTeamCounters(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.users.user = &types.User{
		ID:    "mod-1",
		Role:  enum.UserRoleModerator,
		Teams: []string{"team-1", "team-2"},
	}

	content, err := svc.ReviewContent(t.Context(), "content-1", enum.ReviewDecisionRemove, "mod-1")
	require.NoError(t, err)

	assert.Equal(t, "mod-1", content.ReviewedBy)
	assert.Equal(t, []counterCall{
		{teamID: "team-1", removed: true},
		{teamID: "team-2", removed: true},
	}, fakes.counter.calls)
}

func TestReviewContentApprovalCountsAsKept(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)
	fakes.users.user = &types.User{ID: "mod-1", Teams: []string{"team-1"}}

	_, err := svc.ReviewContent(t.Context(), "content-1", enum.ReviewDecisionApprove, "mod-1")
	require.NoError(t, err)

	assert.Equal(t, []counterCall{{teamID: "team-1", removed: false}}, fakes.counter.calls)
}

func TestReviewContentSystemModeratorSkipsCounters(t *testing.T) {
	t.Parallel()

	svc, fakes := setupContentTest(t)

	content, err := svc.ReviewContent(t.Context(), "content-1", enum.ReviewDecisionRemove, SystemModeratorID)
	require.NoError(t, err)

	assert.Equal(t, SystemModeratorID, content.ReviewedBy)
	assert.Empty(t, fakes.counter.calls)
}
