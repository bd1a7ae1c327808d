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
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ContentModel handles database operations for flagged content.
type ContentModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewContent creates a repository with database access for flagged content.
func NewContent(db *bun.DB, logger *zap.Logger) *ContentModel {
	return &ContentModel{
		db:     db,
		logger: logger.Named("db_content"),
	}
}

// CreateContent inserts a newly flagged item from the detection pipeline.
func (r *ContentModel) CreateContent(ctx context.Context, content *types.FlaggedContent) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(content).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Created flagged content",
		zap.String("contentID", content.ID),
		zap.String("tenantID", content.TenantID),
		zap.String("severity", string(content.Severity)))

	return nil
}

// GetContent retrieves flagged content by ID, rejecting cross-tenant access.
func (r *ContentModel) GetContent(ctx context.Context, contentID, tenantID string) (*types.FlaggedContent, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.FlaggedContent, error) {
		content := new(types.FlaggedContent)

		err := r.db.NewSelect().
			Model(content).
			Where("id = ?", contentID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrContentNotFound
			}
			return nil, fmt.Errorf("failed to get content: %w", err)
		}

		if content.TenantID != tenantID {
			return nil, types.ErrTenantMismatch
		}

		return content, nil
	})
}

// GetPendingContent retrieves unreviewed content for a tenant,
// most recent first.
func (r *ContentModel) GetPendingContent(ctx context.Context, tenantID string, limit int) ([]*types.FlaggedContent, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.FlaggedContent, error) {
		var content []*types.FlaggedContent

		query := r.db.NewSelect().
			Model(&content).
			Where("tenant_id = ?", tenantID).
			Where("reviewed_at IS NULL").
			Order("timestamp DESC")

		if limit > 0 {
			query = query.Limit(limit)
		}

		if err := query.Scan(ctx); err != nil {
			return nil, fmt.Errorf("failed to get pending content: %w", err)
		}

		return content, nil
	})
}

// GetReviewedContent retrieves the review history for a tenant filtered
// by decision, most recent first.
func (r *ContentModel) GetReviewedContent(
	ctx context.Context, tenantID string, decision enum.ReviewDecision, limit int,
) ([]*types.FlaggedContent, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.FlaggedContent, error) {
		var content []*types.FlaggedContent

		query := r.db.NewSelect().
			Model(&content).
			Where("tenant_id = ?", tenantID).
			Where("review_decision = ?", decision).
			Order("reviewed_at DESC")

		if limit > 0 {
			query = query.Limit(limit)
		}

		if err := query.Scan(ctx); err != nil {
			return nil, fmt.Errorf("failed to get reviewed content: %w", err)
		}

		return content, nil
	})
}

// ReviewContent records a one-shot moderator decision and appends the
// matching audit record in a single transaction.
//
// The guard on reviewed_at serializes concurrent reviews of the same id:
// exactly one caller wins the update, every later caller gets
// ErrContentAlreadyReviewed.
func (r *ContentModel) ReviewContent(
	ctx context.Context, contentID string, decision enum.ReviewDecision, moderatorID string,
) (*types.FlaggedContent, error) {
	content := new(types.FlaggedContent)

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		res, err := tx.NewUpdate().
			Model(content).
			Set("reviewed_by = ?", moderatorID).
			Set("reviewed_at = ?", now).
			Set("review_decision = ?", decision).
			Where("id = ?", contentID).
			Where("reviewed_at IS NULL").
			Returning("*").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to review content: %w", err)
		}

		if affected, _ := res.RowsAffected(); affected == 0 {
			exists, err := tx.NewSelect().
				Model((*types.FlaggedContent)(nil)).
				Where("id = ?", contentID).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("failed to check content existence: %w", err)
			}
			if !exists {
				return types.ErrContentNotFound
			}
			return types.ErrContentAlreadyReviewed
		}

		// The audit record inherits the content's tenant so the activity
		// feed stays within the same isolation boundary.
		moderatorName := moderatorID

		var moderator types.User
		err = tx.NewSelect().
			Model(&moderator).
			Column("display_name").
			Where("id = ?", moderatorID).
			Scan(ctx)
		if err == nil {
			moderatorName = moderator.DisplayName
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to resolve moderator: %w", err)
		}

		activity := &types.ModeratorActivity{
			ID:          uuid.New().String(),
			TenantID:    content.TenantID,
			ModeratorID: moderatorID,
			Moderator:   moderatorName,
			Action:      decision.Action(),
			Snippet:     types.Snippet(content.Body),
			ContentID:   content.ID,
			Timestamp:   now,
		}

		if _, err := tx.NewInsert().Model(activity).Exec(ctx); err != nil {
			return fmt.Errorf("failed to append moderator activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Reviewed content",
		zap.String("contentID", contentID),
		zap.String("moderatorID", moderatorID),
		zap.String("decision", string(decision)))

	return content, nil
}
