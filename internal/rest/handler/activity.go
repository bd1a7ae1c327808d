package handler

import (
	"net/http"

	"github.com/arbiterhq/arbiter/internal/database"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// DefaultFeedLimit caps feed listings when the client does not ask for
// a specific size.
const DefaultFeedLimit = 50

// ActivityHandler handles the moderator activity and alert feeds.
type ActivityHandler struct {
	db      database.Client
	logger  *zap.Logger
	maxPage int
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(db database.Client, logger *zap.Logger, maxPage int) *ActivityHandler {
	return &ActivityHandler{
		db:      db,
		logger:  logger.Named("activity_handler"),
		maxPage: maxPage,
	}
}

// ListActivity returns the tenant's audit trail, newest first.
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	activity, err := h.db.Model().Activity().GetActivity(req.Context(), tenant, limitParam(req, DefaultFeedLimit, h.maxPage))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, activity)
}

// ListAlerts returns the tenant's recent alerts, newest first.
func (h *ActivityHandler) ListAlerts(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	alerts, err := h.db.Model().Alert().GetRecentAlerts(req.Context(), tenant, limitParam(req, DefaultFeedLimit, h.maxPage))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, alerts)
}
