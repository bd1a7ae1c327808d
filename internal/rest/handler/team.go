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

// TeamHandler handles team and membership endpoints.
type TeamHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(db database.Client, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		db:     db,
		logger: logger.Named("team_handler"),
	}
}

// ListTeams returns every team with its stats.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, req bunrouter.Request) error {
	teams, err := h.db.Model().Team().GetTeams(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, teams)
}

// GetTeam returns a single team with its stats.
func (h *TeamHandler) GetTeam(w http.ResponseWriter, req bunrouter.Request) error {
	team, err := h.db.Model().Team().GetTeam(req.Context(), req.Param("id"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, team)
}

// CreateTeam creates a team with the creator as initial member.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.CreateTeamRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	team, err := h.db.Service().Team().CreateTeam(
		req.Context(), body.Name, body.Description, body.Platforms, body.Categories, body.CreatorID,
	)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, team)
}

// UpdateTeam edits a team's descriptive fields.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.UpdateTeamRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	team, err := h.db.Service().Team().UpdateTeam(req.Context(), req.Param("id"), &types.TeamUpdate{
		Name:        body.Name,
		Description: body.Description,
		Platforms:   body.Platforms,
		Categories:  body.Categories,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, team)
}

// DeleteTeam removes a team and its memberships.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, req bunrouter.Request) error {
	if err := h.db.Service().Team().DeleteTeam(req.Context(), req.Param("id")); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ListMembers resolves a team's member list to user records.
func (h *TeamHandler) ListMembers(w http.ResponseWriter, req bunrouter.Request) error {
	members, err := h.db.Service().Team().ListMembers(req.Context(), req.Param("id"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, members)
}

// AddMember places a user on a team.
func (h *TeamHandler) AddMember(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.MemberRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	if err := h.db.Service().Team().AddMember(req.Context(), req.Param("id"), body.UserID); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// RemoveMember takes a user off a team.
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, req bunrouter.Request) error {
	if err := h.db.Service().Team().RemoveMember(req.Context(), req.Param("id"), req.Param("userId")); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
