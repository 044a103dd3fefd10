package handlers

import (
	"net/http"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gin-gonic/gin"

	"orrery/models"
	"orrery/simulation"
)

// Handler serves the orrery API on top of a running engine
type Handler struct {
	engine         *simulation.Engine
	logger         kitlog.Logger
	streamInterval time.Duration
}

// New builds a Handler; a nil logger discards output
func New(engine *simulation.Engine, logger kitlog.Logger, streamInterval time.Duration) *Handler {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	if streamInterval <= 0 {
		streamInterval = time.Second / 30
	}
	return &Handler{
		engine:         engine,
		logger:         kitlog.With(logger, "component", "http"),
		streamInterval: streamInterval,
	}
}

// GetBodies returns every selectable body with its current phase
func (h *Handler) GetBodies(c *gin.Context) {
	catalog := h.engine.Catalog()
	bodies := catalog.Bodies()
	c.JSON(http.StatusOK, gin.H{
		"data":  bodies,
		"count": len(bodies),
	})
}

// GetBodyByID returns a single body by id or case-insensitive name
func (h *Handler) GetBodyByID(c *gin.Context) {
	key := c.Param("id")
	catalog := h.engine.Catalog()

	if body, ok := catalog.Lookup(key); ok {
		c.JSON(http.StatusOK, gin.H{"data": body})
		return
	}
	for _, body := range catalog.Bodies() {
		if strings.EqualFold(bodyName(body), key) {
			c.JSON(http.StatusOK, gin.H{"data": body})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Body not found"})
}

// GetStar returns the central star
func (h *Handler) GetStar(c *gin.Context) {
	catalog := h.engine.Catalog()
	c.JSON(http.StatusOK, gin.H{"data": catalog.Star})
}

// GetSnapshot returns the latest published frame
func (h *Handler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.Frame()})
}

func bodyName(b models.Body) string {
	switch v := b.(type) {
	case models.Planet:
		return v.Name
	case models.Moon:
		return v.Name
	case models.Comet:
		return v.Name
	case models.AsteroidBelt:
		return v.Name
	}
	return ""
}
