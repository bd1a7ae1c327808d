package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/zap"
)

// TeamModel handles database operations for moderation teams.
type TeamModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewTeam creates a repository with database access for team records.
func NewTeam(db *bun.DB, logger *zap.Logger) *TeamModel {
	return &TeamModel{
		db:     db,
		logger: logger.Named("db_team"),
	}
}

// GetTeams retrieves all teams with their stats.
func (r *TeamModel) GetTeams(ctx context.Context) ([]*types.Team, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Team, error) {
		var teams []*types.Team

		err := r.db.NewSelect().
			Model(&teams).
			Relation("Stats").
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get teams: %w", err)
		}

		return teams, nil
	})
}

// GetTeam retrieves a single team by ID with its stats.
func (r *TeamModel) GetTeam(ctx context.Context, teamID string) (*types.Team, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Team, error) {
		team := new(types.Team)

		err := r.db.NewSelect().
			Model(team).
			Relation("Stats").
			Where("team.id = ?", teamID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to get team: %w", err)
		}

		return team, nil
	})
}

// CreateTeam inserts a new team together with its zeroed stats row.
func (r *TeamModel) CreateTeam(ctx context.Context, team *types.Team) error {
	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(team).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		stats := &types.TeamStats{TeamID: team.ID}
		if _, err := tx.NewInsert().Model(stats).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create team stats: %w", err)
		}

		for _, userID := range team.Members {
			if _, err := tx.NewUpdate().
				Model((*types.User)(nil)).
				Set("teams = array_append(teams, ?)", team.ID).
				Where("id = ?", userID).
				Where("NOT (? = ANY(teams))", team.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to add team to member: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Created team",
		zap.String("teamID", team.ID),
		zap.String("name", team.Name))

	return nil
}

// UpdateTeam applies the given partial update and returns the updated team.
func (r *TeamModel) UpdateTeam(
	ctx context.Context, teamID string, update *types.TeamUpdate,
) (*types.Team, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Team, error) {
		team := new(types.Team)

		query := r.db.NewUpdate().
			Model(team).
			Where("id = ?", teamID).
			Returning("*")

		if update.Name != nil {
			query = query.Set("name = ?", *update.Name)
		}
		if update.Description != nil {
			query = query.Set("description = ?", *update.Description)
		}
		if update.Platforms != nil {
			query = query.Set("platforms = ?", pgdialect.Array(update.Platforms))
		}
		if update.Categories != nil {
			query = query.Set("categories = ?", pgdialect.Array(update.Categories))
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update team: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, types.ErrTeamNotFound
		}

		return team, nil
	})
}

// AddMember adds a user to the team member set and mirrors the team onto
// the user's team list in one transaction. Adding an existing member is
// a no-op.
func (r *TeamModel) AddMember(ctx context.Context, teamID, userID string) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*types.Team)(nil)).
			Set("members = array_append(members, ?)", userID).
			Where("id = ?", teamID).
			Where("NOT (? = ANY(members))", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add team member: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			// Either the team is missing or the user is already a member.
			exists, err := tx.NewSelect().
				Model((*types.Team)(nil)).
				Where("id = ?", teamID).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("failed to check team existence: %w", err)
			}
			if !exists {
				return types.ErrTeamNotFound
			}

			return nil
		}

		if _, err := tx.NewUpdate().
			Model((*types.User)(nil)).
			Set("teams = array_append(teams, ?)", teamID).
			Where("id = ?", userID).
			Where("NOT (? = ANY(teams))", teamID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to add team to user: %w", err)
		}

		return nil
	})
}

// RemoveMember removes a user from the team member set and drops the team
// from the user's team list in one transaction. Removing a non-member is
// a no-op.
func (r *TeamModel) RemoveMember(ctx context.Context, teamID, userID string) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*types.Team)(nil)).
			Set("members = array_remove(members, ?)", userID).
			Where("id = ?", teamID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove team member: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return types.ErrTeamNotFound
		}

		if _, err := tx.NewUpdate().
			Model((*types.User)(nil)).
			Set("teams = array_remove(teams, ?)", teamID).
			Where("id = ?", userID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove team from user: %w", err)
		}

		return nil
	})
}

// DeleteTeam removes a team, its stats row, and the team reference held
// on every member in one transaction.
func (r *TeamModel) DeleteTeam(ctx context.Context, teamID string) error {
	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*types.Team)(nil)).
			Where("id = ?", teamID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return types.ErrTeamNotFound
		}

		if _, err := tx.NewDelete().
			Model((*types.TeamStats)(nil)).
			Where("team_id = ?", teamID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete team stats: %w", err)
		}

		if _, err := tx.NewUpdate().
			Model((*types.User)(nil)).
			Set("teams = array_remove(teams, ?)", teamID).
			Where("? = ANY(teams)", teamID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove team from users: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Deleted team", zap.String("teamID", teamID))

	return nil
}

// IncrementReviewStats bumps the reviewed counter, and the removed
// counter when the review removed content.
func (r *TeamModel) IncrementReviewStats(ctx context.Context, teamID string, removed bool) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		query := r.db.NewUpdate().
			Model((*types.TeamStats)(nil)).
			Set("content_reviewed = content_reviewed + 1").
			Where("team_id = ?", teamID)

		if removed {
			query = query.Set("content_removed = content_removed + 1")
		}

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to increment team stats: %w", err)
		}

		return nil
	})
}
