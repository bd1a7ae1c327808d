package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"go.uber.org/zap"
)

// userStore is the slice of the user model the approval workflow needs.
type userStore interface {
	GetUser(ctx context.Context, userID string) (*types.User, error)
	CreateUser(ctx context.Context, user *types.User) error
	UpdateUser(ctx context.Context, userID string, update *types.UserUpdate) (*types.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// UserService handles the account approval workflow on top of the user model.
type UserService struct {
	store  userStore
	logger *zap.Logger
}

// NewUser creates a new user service.
func NewUser(store userStore, logger *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger.Named("user_service"),
	}
}

// RegisterUser creates an account in the pending state. New sign-ups
// always start unapproved regardless of what the caller supplies.
func (s *UserService) RegisterUser(ctx context.Context, user *types.User) error {
	user.Role = enum.UserRolePending
	user.Approved = false
	user.Teams = []string{}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("Registered pending user",
		zap.String("userID", user.ID),
		zap.String("email", user.Email))

	return nil
}

// ApproveUser grants an assignable role to a pending account and replaces
// its team list with the given one. All of it lands in a single update, so
// a bad team id leaves the account untouched. Re-approving an already
// approved account overwrites the role and memberships.
func (s *UserService) ApproveUser(
	ctx context.Context, userID string, role enum.UserRole, teamIDs []string,
) (*types.User, error) {
	if !role.Assignable() {
		return nil, fmt.Errorf("%w: %q is not assignable", types.ErrInvalidRole, role)
	}

	if teamIDs == nil {
		teamIDs = []string{}
	}

	approved := true
	user, err := s.store.UpdateUser(ctx, userID, &types.UserUpdate{
		Role:     &role,
		Approved: &approved,
		Teams:    teamIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}

	s.logger.Info("Approved user",
		zap.String("userID", userID),
		zap.String("role", string(role)),
		zap.Int("teams", len(teamIDs)))

	return user, nil
}

// RejectUser removes a pending account entirely, including any team
// memberships it accumulated.
func (s *UserService) RejectUser(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to reject user: %w", err)
	}

	s.logger.Info("Rejected user", zap.String("userID", userID))

	return nil
}

// EditUser applies an admin edit to an account. A role change to pending
// is rejected since demotion back into the sign-up queue is not a thing,
// and approving an account that would stay pending is rejected for the
// same reason. Team list edits replace the membership list wholesale.
func (s *UserService) EditUser(ctx context.Context, userID string, update *types.UserUpdate) (*types.User, error) {
	if update.Role != nil && !update.Role.Assignable() {
		return nil, fmt.Errorf("%w: %q is not assignable", types.ErrInvalidRole, *update.Role)
	}

	if update.Approved != nil && *update.Approved && update.Role == nil {
		current, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user for edit: %w", err)
		}
		if current.Role == enum.UserRolePending {
			return nil, fmt.Errorf("%w: cannot approve an account that has no assigned role", types.ErrInvalidRole)
		}
	}

	user, err := s.store.UpdateUser(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to edit user: %w", err)
	}

	s.logger.Info("Edited user", zap.String("userID", userID))

	return user, nil
}
