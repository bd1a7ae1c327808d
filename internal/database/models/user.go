package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/arbiterhq/arbiter/internal/database/types/enum"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/zap"
)

// UserModel handles database operations for dashboard users.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a repository with database access for user records.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// GetUsers retrieves all user records ordered by creation time.
func (r *UserModel) GetUsers(ctx context.Context) ([]*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.User, error) {
		var users []*types.User

		err := r.db.NewSelect().
			Model(&users).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get users: %w", err)
		}

		return users, nil
	})
}

// GetPendingUsers retrieves users awaiting admin approval.
func (r *UserModel) GetPendingUsers(ctx context.Context) ([]*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.User, error) {
		var users []*types.User

		err := r.db.NewSelect().
			Model(&users).
			Where("role = ?", enum.UserRolePending).
			Where("approved = false").
			Order("created_at ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending users: %w", err)
		}

		return users, nil
	})
}

// GetUser retrieves a single user by ID.
func (r *UserModel) GetUser(ctx context.Context, userID string) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		user := new(types.User)

		err := r.db.NewSelect().
			Model(user).
			Where("id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		return user, nil
	})
}

// GetUsersByIDs retrieves the users whose IDs appear in the given list.
// IDs that no longer resolve are simply absent from the result.
func (r *UserModel) GetUsersByIDs(ctx context.Context, userIDs []string) ([]*types.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.User, error) {
		var users []*types.User

		err := r.db.NewSelect().
			Model(&users).
			Where("id IN (?)", bun.In(userIDs)).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get users by ids: %w", err)
		}

		return users, nil
	})
}

// CreateUser inserts a new user record from sign-up.
func (r *UserModel) CreateUser(ctx context.Context, user *types.User) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(user).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Created user",
		zap.String("userID", user.ID),
		zap.String("role", string(user.Role)))

	return nil
}

// UpdateUser applies role, approval, and team assignments in one
// transaction and returns the updated record. A non-nil Teams slice
// replaces the membership list wholesale, keeping the member sets on the
// affected teams in sync. The transaction refuses to leave an account
// both pending and approved.
func (r *UserModel) UpdateUser(
	ctx context.Context, userID string, update *types.UserUpdate,
) (*types.User, error) {
	if update.Role == nil && update.Approved == nil && update.Teams == nil {
		return r.GetUser(ctx, userID)
	}

	user := new(types.User)

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		current := new(types.User)

		err := tx.NewSelect().
			Model(current).
			Where("id = ?", userID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.ErrUserNotFound
			}
			return fmt.Errorf("failed to load user for update: %w", err)
		}

		query := tx.NewUpdate().
			Model(user).
			Where("id = ?", userID).
			Returning("*")

		if update.Role != nil {
			query = query.Set("role = ?", *update.Role)
		}
		if update.Approved != nil {
			query = query.Set("approved = ?", *update.Approved)
		}
		if update.Teams != nil {
			query = query.Set("teams = ?", pgdialect.Array(update.Teams))
		}

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		if user.Role == enum.UserRolePending && user.Approved {
			return fmt.Errorf("%w: pending accounts cannot be approved without a role", types.ErrInvalidRole)
		}

		if update.Teams != nil {
			if err := syncMemberships(ctx, tx, userID, current.Teams, update.Teams); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// syncMemberships mirrors a wholesale team list replacement onto the
// member sets of the teams entering and leaving the list.
func syncMemberships(ctx context.Context, tx bun.Tx, userID string, current, desired []string) error {
	want := make(map[string]struct{}, len(desired))
	for _, teamID := range desired {
		want[teamID] = struct{}{}
	}

	have := make(map[string]struct{}, len(current))
	for _, teamID := range current {
		have[teamID] = struct{}{}

		if _, ok := want[teamID]; ok {
			continue
		}

		// A team that no longer exists has nothing to clean up.
		if _, err := tx.NewUpdate().
			Model((*types.Team)(nil)).
			Set("members = array_remove(members, ?)", userID).
			Where("id = ?", teamID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove user from team: %w", err)
		}
	}

	for _, teamID := range desired {
		if _, ok := have[teamID]; ok {
			continue
		}

		res, err := tx.NewUpdate().
			Model((*types.Team)(nil)).
			Set("members = array_append(members, ?)", userID).
			Where("id = ?", teamID).
			Where("NOT (? = ANY(members))", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add user to team: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			exists, err := tx.NewSelect().
				Model((*types.Team)(nil)).
				Where("id = ?", teamID).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("failed to check team existence: %w", err)
			}
			if !exists {
				return fmt.Errorf("%w: %s", types.ErrTeamNotFound, teamID)
			}
		}
	}

	return nil
}

// UpdateLastLogin stamps the user's most recent login time.
func (r *UserModel) UpdateLastLogin(ctx context.Context, userID string, loginAt time.Time) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := r.db.NewUpdate().
			Model((*types.User)(nil)).
			Set("last_login = ?", loginAt).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return types.ErrUserNotFound
		}

		return nil
	})
}

// DeleteUser permanently removes a user and pulls them out of every team
// membership list in the same transaction.
func (r *UserModel) DeleteUser(ctx context.Context, userID string) error {
	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*types.User)(nil)).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			return types.ErrUserNotFound
		}

		_, err = tx.NewUpdate().
			Model((*types.Team)(nil)).
			Set("members = array_remove(members, ?)", userID).
			Where("? = ANY(members)", userID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove user from teams: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Deleted user", zap.String("userID", userID))

	return nil
}
