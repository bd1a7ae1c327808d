package database

import (
	"github.com/arbiterhq/arbiter/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user     *models.UserModel
	team     *models.TeamModel
	content  *models.ContentModel
	activity *models.ActivityModel
	alert    *models.AlertModel
	channel  *models.ChannelModel
	stats    *models.StatsModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user:     models.NewUser(db, logger),
		team:     models.NewTeam(db, logger),
		content:  models.NewContent(db, logger),
		activity: models.NewActivity(db, logger),
		alert:    models.NewAlert(db, logger),
		channel:  models.NewChannel(db, logger),
		stats:    models.NewStats(db, logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Team returns the team model repository.
func (r *Repository) Team() *models.TeamModel {
	return r.team
}

// Content returns the flagged content model repository.
func (r *Repository) Content() *models.ContentModel {
	return r.content
}

// Activity returns the moderator activity model repository.
func (r *Repository) Activity() *models.ActivityModel {
	return r.activity
}

// Alert returns the alert model repository.
func (r *Repository) Alert() *models.AlertModel {
	return r.alert
}

// Channel returns the monitored channel model repository.
func (r *Repository) Channel() *models.ChannelModel {
	return r.channel
}

// Stats returns the stats model repository.
func (r *Repository) Stats() *models.StatsModel {
	return r.stats
}
