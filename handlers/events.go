package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/spatial/r2"

	"orrery/camera"
	"orrery/interaction"
	"orrery/simulation"
)

type focusRequest struct {
	ID string `json:"id" binding:"required"`
}

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type clickRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type panRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type wheelRequest struct {
	DeltaY float64 `json:"delta_y"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type speedRequest struct {
	Multiplier float64 `json:"multiplier"`
}

// respond writes the frame produced by an intent, or maps its error
func (h *Handler) respond(c *gin.Context, f *simulation.Frame, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"data": f})
	case errors.Is(err, interaction.ErrUnknownBody):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, interaction.ErrFocused):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Focus toggles focus on a body by id
func (h *Handler) Focus(c *gin.Context) {
	var req focusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := h.engine.Focus(req.ID)
	h.respond(c, f, err)
}

// Click focuses whatever lies under a canvas point
func (h *Handler) Click(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		badRequest(c, "canvas width and height must be positive")
		return
	}
	f, err := h.engine.Click(r2.Vec{X: req.X, Y: req.Y}, camera.Rect{Width: req.Width, Height: req.Height})
	h.respond(c, f, err)
}

// PanStart begins a drag at a pointer position
func (h *Handler) PanStart(c *gin.Context) {
	var req pointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := h.engine.PanStart(r2.Vec{X: req.X, Y: req.Y})
	h.respond(c, f, err)
}

// PanMove continues a drag to a pointer position
func (h *Handler) PanMove(c *gin.Context) {
	var req pointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := h.engine.PanMove(r2.Vec{X: req.X, Y: req.Y})
	h.respond(c, f, err)
}

// PanEnd finishes a drag
func (h *Handler) PanEnd(c *gin.Context) {
	f, err := h.engine.PanEnd()
	h.respond(c, f, err)
}

// Pan moves the free camera by a screen-space delta
func (h *Handler) Pan(c *gin.Context) {
	var req panRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := h.engine.Pan(r2.Vec{X: req.DX, Y: req.DY})
	h.respond(c, f, err)
}

// Wheel zooms at the cursor
func (h *Handler) Wheel(c *gin.Context) {
	var req wheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := h.engine.Wheel(req.DeltaY, r2.Vec{X: req.X, Y: req.Y}, camera.Rect{Width: req.Width, Height: req.Height})
	h.respond(c, f, err)
}

// ZoomIn steps the free camera zoom up
func (h *Handler) ZoomIn(c *gin.Context) {
	f, err := h.engine.ZoomIn()
	h.respond(c, f, err)
}

// ZoomOut steps the free camera zoom down
func (h *Handler) ZoomOut(c *gin.Context) {
	f, err := h.engine.ZoomOut()
	h.respond(c, f, err)
}

// ResetZoom returns to the home view
func (h *Handler) ResetZoom(c *gin.Context) {
	f, err := h.engine.ResetZoom()
	h.respond(c, f, err)
}

// Toggle pauses or resumes the physics clock
func (h *Handler) Toggle(c *gin.Context) {
	f, err := h.engine.TogglePlayPause()
	h.respond(c, f, err)
}

// Speed sets the physics speed multiplier; only positive finite values
// are accepted
func (h *Handler) Speed(c *gin.Context) {
	var req speedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Multiplier <= 0 || math.IsInf(req.Multiplier, 0) || math.IsNaN(req.Multiplier) {
		badRequest(c, "multiplier must be a positive number")
		return
	}
	f, err := h.engine.SetSpeed(req.Multiplier)
	h.respond(c, f, err)
}

// Reset reseeds the system and snaps the camera home
func (h *Handler) Reset(c *gin.Context) {
	f, err := h.engine.FullReset()
	h.respond(c, f, err)
}
