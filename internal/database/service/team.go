package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// teamStore is the slice of the team model the service depends on.
type teamStore interface {
	GetTeam(ctx context.Context, teamID string) (*types.Team, error)
	CreateTeam(ctx context.Context, team *types.Team) error
	UpdateTeam(ctx context.Context, teamID string, update *types.TeamUpdate) (*types.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
}

// memberDirectory resolves member ids to user records.
type memberDirectory interface {
	GetUser(ctx context.Context, userID string) (*types.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]*types.User, error)
}

// TeamService handles team lifecycle and membership business logic.
type TeamService struct {
	model  teamStore
	user   memberDirectory
	logger *zap.Logger
}

// NewTeam creates a new team service.
func NewTeam(model teamStore, user memberDirectory, logger *zap.Logger) *TeamService {
	return &TeamService{
		model:  model,
		user:   user,
		logger: logger.Named("team_service"),
	}
}

// CreateTeam creates a team with the creator as its initial member.
func (s *TeamService) CreateTeam(
	ctx context.Context, name, description string,
	platforms []enum.Platform, categories []enum.ContentCategory,
	creatorID string,
) (*types.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ErrTeamNameRequired
	}

	if _, err := s.user.GetUser(ctx, creatorID); err != nil {
		return nil, fmt.Errorf("failed to resolve team creator: %w", err)
	}

	team := &types.Team{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now(),
		Members:     []string{creatorID},
		Platforms:   platforms,
		Categories:  categories,
	}

	if err := s.model.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	team.Stats = &types.TeamStats{TeamID: team.ID}

	s.logger.Info("Created team",
		zap.String("teamID", team.ID),
		zap.String("name", team.Name),
		zap.String("createdBy", creatorID))

	return team, nil
}

// ListMembers resolves a team's member list to user records, preserving
// the membership order. IDs that no longer resolve to a user are dropped
// rather than failing the whole listing.
func (s *TeamService) ListMembers(ctx context.Context, teamID string) ([]*types.TeamMember, error) {
	team, err := s.model.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team for member listing: %w", err)
	}

	users, err := s.user.GetUsersByIDs(ctx, team.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team members: %w", err)
	}

	byID := make(map[string]*types.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	members := make([]*types.TeamMember, 0, len(team.Members))
	for _, userID := range team.Members {
		user, ok := byID[userID]
		if !ok {
			s.logger.Warn("Dropping unresolvable team member",
				zap.String("teamID", teamID),
				zap.String("userID", userID))
			continue
		}

		members = append(members, &types.TeamMember{
			UserID:      user.ID,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			AvatarURL:   user.AvatarURL,
			Role:        user.Role,
		})
	}

	return members, nil
}

// AddMember places an existing user on a team.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) error {
	if _, err := s.user.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to resolve user for membership: %w", err)
	}

	if err := s.model.AddMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}

	s.logger.Info("Added team member",
		zap.String("teamID", teamID),
		zap.String("userID", userID))

	return nil
}

// RemoveMember takes a user off a team. Removing a non-member succeeds.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	if err := s.model.RemoveMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	s.logger.Info("Removed team member",
		zap.String("teamID", teamID),
		zap.String("userID", userID))

	return nil
}

// UpdateTeam applies a partial edit to a team's descriptive fields.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID string, update *types.TeamUpdate) (*types.Team, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, types.ErrTeamNameRequired
		}
		update.Name = &trimmed
	}

	team, err := s.model.UpdateTeam(ctx, teamID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team and cleans up every member's team list.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	if err := s.model.DeleteTeam(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.logger.Info("Deleted team", zap.String("teamID", teamID))

	return nil
}
