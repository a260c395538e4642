package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/clubfeed/api/handler"
	"github.com/use-agent/clubfeed/api/middleware"
	"github.com/use-agent/clubfeed/config"
	"github.com/use-agent/clubfeed/service"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Clubs:   RateLimit
//
// Health is outside the rate limit so monitoring probes always work.
func NewRouter(clubs *service.Clubs, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(clubs, startTime))

	list := handler.Clubs(clubs)
	limit := middleware.RateLimit(cfg.RateLimit)

	v1.GET("/clubs", limit, list)

	// Legacy path, kept for existing clients.
	r.GET("/clubs", limit, list)

	return r
}
