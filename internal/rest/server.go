package rest

import (
	"net/http"
	"time"

	"github.com/arbiterhq/arbiter/internal/database"
	"github.com/arbiterhq/arbiter/internal/rest/handler"
	"github.com/arbiterhq/arbiter/internal/setup/config"
	"github.com/redis/rueidis"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	userHandler     *handler.UserHandler
	teamHandler     *handler.TeamHandler
	contentHandler  *handler.ContentHandler
	channelHandler  *handler.ChannelHandler
	activityHandler *handler.ActivityHandler
	statsHandler    *handler.StatsHandler
}

// NewServer creates the REST API router with all routes registered. The
// ratelimit client may be nil to disable limiting.
func NewServer(db database.Client, ratelimit rueidis.Client, logger *zap.Logger, cfg *config.API) http.Handler {
	server := &Server{
		userHandler:     handler.NewUserHandler(db, logger),
		teamHandler:     handler.NewTeamHandler(db, logger),
		contentHandler:  handler.NewContentHandler(db, logger, cfg.MaxPageSize),
		channelHandler:  handler.NewChannelHandler(db, logger),
		activityHandler: handler.NewActivityHandler(db, logger, cfg.MaxPageSize),
		statsHandler:    handler.NewStatsHandler(db, logger),
	}

	router := bunrouter.New()

	router.Use(
		loggingMiddleware(logger),
		ratelimitMiddleware(ratelimit, cfg.RequestsPerMinute, logger),
		timeoutMiddleware(time.Duration(cfg.RequestTimeout)*time.Millisecond),
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.GET("/users", server.userHandler.ListUsers)
		g.GET("/users/pending", server.userHandler.ListPendingUsers)
		g.GET("/users/:id", server.userHandler.GetUser)
		g.POST("/users", server.userHandler.RegisterUser)
		g.POST("/users/:id/login", server.userHandler.TouchLogin)
		g.POST("/users/:id/approve", server.userHandler.ApproveUser)
		g.POST("/users/:id/reject", server.userHandler.RejectUser)
		g.PATCH("/users/:id", server.userHandler.EditUser)

		g.GET("/teams", server.teamHandler.ListTeams)
		g.GET("/teams/:id", server.teamHandler.GetTeam)
		g.POST("/teams", server.teamHandler.CreateTeam)
		g.PATCH("/teams/:id", server.teamHandler.UpdateTeam)
		g.DELETE("/teams/:id", server.teamHandler.DeleteTeam)
		g.GET("/teams/:id/members", server.teamHandler.ListMembers)
		g.POST("/teams/:id/members", server.teamHandler.AddMember)
		g.DELETE("/teams/:id/members/:userId", server.teamHandler.RemoveMember)

		g.POST("/content", server.contentHandler.IngestContent)
		g.GET("/content/pending", server.contentHandler.ListPendingContent)
		g.GET("/content/reviewed", server.contentHandler.ListReviewedContent)
		g.GET("/content/:id", server.contentHandler.GetContent)
		g.POST("/content/:id/review", server.contentHandler.ReviewContent)

		g.GET("/channels", server.channelHandler.ListChannels)
		g.GET("/channels/:id", server.channelHandler.GetChannel)
		g.POST("/channels", server.channelHandler.AddChannel)
		g.PATCH("/channels/:id", server.channelHandler.UpdateChannel)
		g.DELETE("/channels/:id", server.channelHandler.DeleteChannel)

		g.GET("/activity", server.activityHandler.ListActivity)
		g.GET("/alerts", server.activityHandler.ListAlerts)

		g.GET("/stats/content", server.statsHandler.GetContentStats)
		g.GET("/stats/flagged-over-time", server.statsHandler.GetFlaggedSeries)
		g.GET("/stats/platforms", server.statsHandler.GetPlatformBreakdown)
	})

	return router
}
