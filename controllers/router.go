package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/services"
)

// RouterOptions carries what the routes need besides the handlers.
type RouterOptions struct {
	Secret        []byte
	ModeratorRole string
	Metrics       *services.MetricsService
	StaticDir     string

	PublicRate     rate.Limit
	PublicBurst    int
	AuthRate       rate.Limit
	AuthBurst      int
	ModeratorRate  rate.Limit
	ModeratorBurst int
}

func NewRouter(h *Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if opts.Metrics != nil {
		router.Use(middlewares.Metrics(opts.Metrics))
	}

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/ping", middlewares.RateLimitMiddleware(opts.PublicRate, opts.PublicBurst, getKey), Ping)
	router.GET("/media/*ref", h.GetMedia)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.StaticDir != "" {
		router.Static("/static", opts.StaticDir)
	}

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth(opts.Secret, opts.ModeratorRole))
	auth.Use(middlewares.RateLimitMiddleware(opts.AuthRate, opts.AuthBurst, getKey))
	{
		// prayer routes
		auth.GET("/prayers", h.GetPrayers)
		auth.POST("/prayers", h.CreatePrayer)
		auth.GET("/prayers/categories", h.GetPrayerCategories)
		auth.GET("/prayers/:prayer_id", h.GetPrayer)
		auth.POST("/prayers/:prayer_id/pray", h.PrayForPrayer)

		// comment routes (under prayer resources)
		auth.GET("/prayers/:prayer_id/comments", h.GetPrayerComments)
		auth.POST("/prayers/:prayer_id/comments", h.CreateComment)
		auth.POST("/prayers/:prayer_id/comments/:comment_id/replies", h.CreateReply)
		auth.POST("/prayers/:prayer_id/comments/:comment_id/pray", h.PrayForComment)

		// draft routes
		auth.POST("/drafts", h.CreateDraft)
		auth.GET("/drafts/:draft_id", h.GetDraft)
		auth.DELETE("/drafts/:draft_id", h.DeleteDraft)
		auth.POST("/drafts/:draft_id/images", h.AttachDraftImages)
		auth.DELETE("/drafts/:draft_id/images/:index", h.RemoveDraftImage)
		auth.POST("/drafts/:draft_id/recording/start", h.StartDraftRecording)
		auth.POST("/drafts/:draft_id/recording/chunks", h.AppendDraftRecording)
		auth.POST("/drafts/:draft_id/recording/stop", h.StopDraftRecording)
		auth.DELETE("/drafts/:draft_id/audio", h.RemoveDraftAudio)
		auth.POST("/drafts/:draft_id/commit", h.CommitDraft)

		// moderator only routes
		moderation := auth.Group("/moderation")
		moderation.Use(middlewares.CheckModerator)
		moderation.Use(middlewares.RateLimitMiddleware(opts.ModeratorRate, opts.ModeratorBurst, getKey))
		{
			moderation.GET("/pending", h.GetPendingPrayers)
			moderation.PATCH("/prayers/:prayer_id/approve", h.ApprovePrayer)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
