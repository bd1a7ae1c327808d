package handler

import (
	"net/http"
	"time"

	"github.com/arbiterhq/arbiter/internal/database"
	"github.com/arbiterhq/arbiter/internal/database/types"
	restTypes "github.com/arbiterhq/arbiter/internal/rest/types"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// UserHandler handles the account approval workflow endpoints.
type UserHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(db database.Client, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		db:     db,
		logger: logger.Named("user_handler"),
	}
}

// ListUsers returns every account, newest first.
func (h *UserHandler) ListUsers(w http.ResponseWriter, req bunrouter.Request) error {
	users, err := h.db.Model().User().GetUsers(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, users)
}

// ListPendingUsers returns accounts awaiting approval, oldest first.
func (h *UserHandler) ListPendingUsers(w http.ResponseWriter, req bunrouter.Request) error {
	users, err := h.db.Model().User().GetPendingUsers(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, users)
}

// GetUser returns a single account.
func (h *UserHandler) GetUser(w http.ResponseWriter, req bunrouter.Request) error {
	user, err := h.db.Model().User().GetUser(req.Context(), req.Param("id"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, user)
}

// RegisterUser creates a pending account from a sign-up.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.RegisterUserRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	user := &types.User{
		ID:          body.ID,
		Email:       body.Email,
		DisplayName: body.DisplayName,
		AvatarURL:   body.AvatarURL,
		CreatedAt:   time.Now(),
	}

	if err := h.db.Service().User().RegisterUser(req.Context(), user); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, user)
}

// TouchLogin stamps the account's most recent sign-in time.
func (h *UserHandler) TouchLogin(w http.ResponseWriter, req bunrouter.Request) error {
	if err := h.db.Model().User().UpdateLastLogin(req.Context(), req.Param("id"), time.Now()); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ApproveUser grants a role to a pending account.
func (h *UserHandler) ApproveUser(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ApproveUserRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	user, err := h.db.Service().User().ApproveUser(req.Context(), req.Param("id"), body.Role, body.TeamIDs)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, user)
}

// RejectUser removes a pending account.
func (h *UserHandler) RejectUser(w http.ResponseWriter, req bunrouter.Request) error {
	if err := h.db.Service().User().RejectUser(req.Context(), req.Param("id")); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// EditUser applies an admin edit to an account.
func (h *UserHandler) EditUser(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.EditUserRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeBadRequest(w, err)
	}

	user, err := h.db.Service().User().EditUser(req.Context(), req.Param("id"), &types.UserUpdate{
		Role:     body.Role,
		Approved: body.Approved,
		Teams:    body.TeamIDs,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, user)
}
