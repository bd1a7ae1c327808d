package handler

import (
	"net/http"
	"strconv"

	"github.com/arbiterhq/arbiter/internal/database"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// StatsHandler handles dashboard statistics endpoints.
type StatsHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(db database.Client, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		db:     db,
		logger: logger.Named("stats_handler"),
	}
}

// GetContentStats returns the tenant's dashboard aggregate.
func (h *StatsHandler) GetContentStats(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	stats, err := h.db.Service().Stats().GetContentStats(req.Context(), tenant)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, stats)
}

// GetFlaggedSeries returns the daily flagged counts for the trailing window.
func (h *StatsHandler) GetFlaggedSeries(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	series, err := h.db.Service().Stats().GetFlaggedOverTime(req.Context(), tenant, days)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, series)
}

// GetPlatformBreakdown returns the per-platform flagged distribution.
func (h *StatsHandler) GetPlatformBreakdown(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	breakdown, err := h.db.Service().Stats().GetPlatformBreakdown(req.Context(), tenant)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, breakdown)
}
