package handler

import (
	"net/http"

	"github.com/arbiterhq/arbiter/internal/database"
	"github.com/arbiterhq/arbiter/internal/database/types"
	restTypes "github.com/arbiterhq/arbiter/internal/rest/types"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ChannelHandler handles monitored channel configuration endpoints.
type ChannelHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewChannelHandler creates a new channel handler.
func NewChannelHandler(db database.Client, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{
		db:     db,
		logger: logger.Named("channel_handler"),
	}
}

// ListChannels returns the tenant's monitored channels.
func (h *ChannelHandler) ListChannels(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	channels, err := h.db.Model().Channel().GetChannels(req.Context(), tenant)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, channels)
}

// GetChannel returns one monitored channel.
func (h *ChannelHandler) GetChannel(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	channel, err := h.db.Model().Channel().GetChannel(req.Context(), req.Param("id"), tenant)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, channel)
}

// AddChannel configures a new monitored channel for the tenant.
func (h *ChannelHandler) AddChannel(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	var body restTypes.CreateChannelRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	enabled := true
	if body.MonitoringEnabled != nil {
		enabled = *body.MonitoringEnabled
	}

	channel, err := h.db.Service().Channel().AddChannel(req.Context(), &types.MonitoredChannel{
		TenantID:           tenant,
		Name:               body.Name,
		Platform:           body.Platform,
		ChannelID:          body.ChannelID,
		MonitoringEnabled:  enabled,
		ModerationSettings: body.ModerationSettings,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, channel)
}

// UpdateChannel edits a monitored channel.
func (h *ChannelHandler) UpdateChannel(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	var body restTypes.UpdateChannelRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	channel, err := h.db.Service().Channel().UpdateChannel(req.Context(), req.Param("id"), tenant, &types.ChannelUpdate{
		Name:              body.Name,
		Platform:          body.Platform,
		ChannelID:         body.ChannelID,
		MonitoringEnabled: body.MonitoringEnabled,
		Settings:          body.Settings,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, channel)
}

// DeleteChannel removes a monitored channel.
func (h *ChannelHandler) DeleteChannel(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	if err := h.db.Service().Channel().RemoveChannel(req.Context(), req.Param("id"), tenant); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
