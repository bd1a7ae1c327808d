package handler

import (
	"net/http"

	"github.com/arbiterhq/arbiter/internal/database"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	restTypes "github.com/arbiterhq/arbiter/internal/rest/types"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ContentHandler handles flagged content ingest and review endpoints.
type ContentHandler struct {
	db      database.Client
	logger  *zap.Logger
	maxPage int
}

// NewContentHandler creates a new content handler.
func NewContentHandler(db database.Client, logger *zap.Logger, maxPage int) *ContentHandler {
	return &ContentHandler{
		db:      db,
		logger:  logger.Named("content_handler"),
		maxPage: maxPage,
	}
}

// IngestContent stores a flagged item from the detection pipeline.
func (h *ContentHandler) IngestContent(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	var content types.FlaggedContent
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&content); err != nil {
		return writeBadRequest(w, err)
	}

	content.TenantID = tenant

	stored, err := h.db.Service().Content().IngestContent(req.Context(), &content)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, stored)
}

// ListPendingContent returns the tenant's unreviewed queue, newest first.
func (h *ContentHandler) ListPendingContent(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	content, err := h.db.Model().Content().GetPendingContent(req.Context(), tenant, limitParam(req, 0, h.maxPage))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, content)
}

// ListReviewedContent returns the tenant's review history for a decision.
func (h *ContentHandler) ListReviewedContent(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	decision := enum.ReviewDecision(req.URL.Query().Get("decision"))
	if !decision.Valid() {
		return writeError(w, h.logger, types.ErrInvalidDecision)
	}

	content, err := h.db.Model().Content().GetReviewedContent(req.Context(), tenant, decision, limitParam(req, 0, h.maxPage))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, content)
}

// GetContent returns one flagged item, rejecting cross-tenant access.
func (h *ContentHandler) GetContent(w http.ResponseWriter, req bunrouter.Request) error {
	tenant, err := tenantID(req)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	content, err := h.db.Model().Content().GetContent(req.Context(), req.Param("id"), tenant)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, content)
}

// ReviewContent records a moderator decision on a flagged item.
func (h *ContentHandler) ReviewContent(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ReviewRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	content, err := h.db.Service().Content().ReviewContent(
		req.Context(), req.Param("id"), body.Decision, body.ModeratorID,
	)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, content)
}
