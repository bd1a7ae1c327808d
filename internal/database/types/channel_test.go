package types_test

import (
	"testing"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		threshold float64
		wantErr   error
	}{
		{name: "lower bound", threshold: 0.5},
		{name: "upper bound", threshold: 1.0},
		{name: "middle", threshold: 0.85},
		{name: "below range", threshold: 0.49, wantErr: types.ErrInvalidThreshold},
		{name: "above range", threshold: 1.5, wantErr: types.ErrInvalidThreshold},
		{name: "zero", threshold: 0, wantErr: types.ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := &types.ModerationSettings{AutoRemoveThreshold: tt.threshold}

			err := settings.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestMonitoredChannelValidate(t *testing.T) {
	t.Parallel()

	valid := func() *types.MonitoredChannel {
		return &types.MonitoredChannel{
			ID:        "ch-1",
			TenantID:  "tenant-1",
			Name:      "general",
			Platform:  enum.PlatformTwitter,
			ChannelID: "123456",
			ModerationSettings: types.ModerationSettings{
				AutoRemoveThreshold: 0.9,
			},
		}
	}

	t.Run("valid channel", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		channel := valid()
		channel.Name = ""
		assert.ErrorIs(t, channel.Validate(), types.ErrChannelNameRequired)
	})

	t.Run("missing external id", func(t *testing.T) {
		t.Parallel()

		channel := valid()
		channel.ChannelID = ""
		assert.ErrorIs(t, channel.Validate(), types.ErrChannelIDRequired)
	})

	t.Run("bad threshold", func(t *testing.T) {
		t.Parallel()

		channel := valid()
		channel.ModerationSettings.AutoRemoveThreshold = 0.1
		assert.ErrorIs(t, channel.Validate(), types.ErrInvalidThreshold)
	})
}
