package database

import (
	"github.com/arbiterhq/arbiter/internal/database/service"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	user    *service.UserService
	team    *service.TeamService
	content *service.ContentService
	channel *service.ChannelService
	stats   *service.StatsService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, cache rueidis.Client, logger *zap.Logger) *Service {
	userModel := repository.User()
	teamModel := repository.Team()
	contentModel := repository.Content()
	alertModel := repository.Alert()
	channelModel := repository.Channel()
	statsModel := repository.Stats()

	return &Service{
		user:    service.NewUser(userModel, logger),
		team:    service.NewTeam(teamModel, userModel, logger),
		content: service.NewContent(contentModel, channelModel, alertModel, teamModel, userModel, logger),
		channel: service.NewChannel(channelModel, logger),
		stats:   service.NewStats(statsModel, cache, logger),
	}
}

// User returns the user service.
func (s *Service) User() *service.UserService {
	return s.user
}

// Team returns the team service.
func (s *Service) Team() *service.TeamService {
	return s.team
}

// Content returns the content service.
func (s *Service) Content() *service.ContentService {
	return s.content
}

// Channel returns the channel service.
func (s *Service) Channel() *service.ChannelService {
	return s.channel
}

// Stats returns the stats service.
func (s *Service) Stats() *service.StatsService {
	return s.stats
}
