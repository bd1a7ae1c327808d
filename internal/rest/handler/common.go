package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arbiterhq/arbiter/internal/database/types"
	restTypes "github.com/arbiterhq/arbiter/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// TenantHeader carries the tenant id on every tenant-scoped request.
const TenantHeader = "X-Tenant-ID"

var errTenantRequired = errors.New("missing " + TenantHeader + " header")

// tenantID extracts the tenant from the request header.
func tenantID(req bunrouter.Request) (string, error) {
	tenant := req.Header.Get(TenantHeader)
	if tenant == "" {
		return "", errTenantRequired
	}

	return tenant, nil
}

// limitParam parses the optional ?limit query parameter, clamped to the
// configured page size cap.
func limitParam(req bunrouter.Request, fallback, maxPage int) int {
	limit := fallback

	if raw := req.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if maxPage > 0 && (limit <= 0 || limit > maxPage) {
		return maxPage
	}

	return limit
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter, err error) error {
	w.WriteHeader(http.StatusBadRequest)

	return bunrouter.JSON(w, restTypes.ErrorResponse{Error: "invalid request body: " + err.Error()})
}

// writeError maps domain errors onto HTTP status codes and writes the
// JSON error envelope. Unrecognized errors become a 500 and get logged.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrTeamNotFound),
		errors.Is(err, types.ErrContentNotFound),
		errors.Is(err, types.ErrChannelNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrContentAlreadyReviewed):
		status = http.StatusConflict
	case errors.Is(err, types.ErrTenantMismatch):
		status = http.StatusForbidden
	case errors.Is(err, types.ErrInvalidRole),
		errors.Is(err, types.ErrInvalidDecision),
		errors.Is(err, types.ErrTeamNameRequired),
		errors.Is(err, types.ErrChannelNameRequired),
		errors.Is(err, types.ErrChannelIDRequired),
		errors.Is(err, types.ErrInvalidThreshold),
		errors.Is(err, errTenantRequired):
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))

		message = "internal server error"
	}

	w.WriteHeader(status)

	return bunrouter.JSON(w, restTypes.ErrorResponse{Error: message})
}
