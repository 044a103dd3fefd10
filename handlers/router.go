package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"orrery/config"
	"orrery/metrics"
)

// NewRouter wires the API routes. collector may be nil, in which case
// /metrics is not served.
func NewRouter(h *Handler, cfg config.Config, collector *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger())
	}

	// CORS - allow the canvas client
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
	}))

	api := r.Group("/api")
	{
		api.GET("/star", h.GetStar)
		api.GET("/bodies", h.GetBodies)
		api.GET("/bodies/:id", h.GetBodyByID)
		api.GET("/snapshot", h.GetSnapshot)
		api.GET("/stream", h.Stream)
	}

	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	events := api.Group("/events", limiter.Middleware())
	{
		events.POST("/focus", h.Focus)
		events.POST("/click", h.Click)
		events.POST("/pan", h.Pan)
		events.POST("/pan/start", h.PanStart)
		events.POST("/pan/move", h.PanMove)
		events.POST("/pan/end", h.PanEnd)
		events.POST("/wheel", h.Wheel)
		events.POST("/zoom-in", h.ZoomIn)
		events.POST("/zoom-out", h.ZoomOut)
		events.POST("/reset-zoom", h.ResetZoom)
		events.POST("/toggle", h.Toggle)
		events.POST("/speed", h.Speed)
		events.POST("/reset", h.Reset)
	}

	if collector != nil {
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}
	return r
}
