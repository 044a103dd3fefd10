// Package camera smooths a 2D view (zoom + center) toward a target.
//
// Targets are set by user interaction or by focus tracking; Tick moves the
// current view a fixed fraction of the remaining distance on every camera
// frame and snaps once the remainder is negligible.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"orrery/models"
)

const (
	MinZoom = 0.25
	MaxZoom = 8.0

	// Smoothing is the fraction of the remaining distance closed per tick
	Smoothing = 0.1

	CenterEpsilon = 0.01
	ZoomEpsilon   = 0.001
)

// State is a zoom level plus the world point at the center of the view
type State struct {
	Zoom   float64
	Center r2.Vec
}

// Rect is the on-screen viewport in pixels
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) valid() bool {
	return r.Width > 0 && r.Height > 0 && finite(r.Width) && finite(r.Height)
}

// Viewport is the visible world rectangle
type Viewport struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Option configures a Controller
type Option func(*Controller)

// WithSmoothing overrides the smoothing factor; values outside (0, 1) are ignored
func WithSmoothing(f float64) Option {
	return func(c *Controller) {
		if f > 0 && f < 1 {
			c.smoothing = f
		}
	}
}

// Controller owns the current and target camera state
type Controller struct {
	current   State
	target    State
	smoothing float64
}

// New returns a controller at zoom 1 centered on home
func New(home r2.Vec, opts ...Option) *Controller {
	c := &Controller{
		current:   State{Zoom: 1, Center: home},
		target:    State{Zoom: 1, Center: home},
		smoothing: Smoothing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current is the state shown on screen this tick
func (c *Controller) Current() State { return c.current }

// Target is the state the camera is moving toward
func (c *Controller) Target() State { return c.target }

// Settled reports whether the current state has reached the target
func (c *Controller) Settled() bool { return c.current == c.target }

// SetTargetZoom clamps z into [MinZoom, MaxZoom] and returns the stored target.
// Non-finite values leave the target unchanged.
func (c *Controller) SetTargetZoom(z float64) float64 {
	if !finite(z) {
		return c.target.Zoom
	}
	c.target.Zoom = clamp(z, MinZoom, MaxZoom)
	return c.target.Zoom
}

// SetTargetCenter stores p as target center; world space is unbounded
func (c *Controller) SetTargetCenter(p r2.Vec) {
	if !finite(p.X) || !finite(p.Y) {
		return
	}
	c.target.Center = p
}

// Jump sets current and target at once, skipping the transition
func (c *Controller) Jump(s State) {
	s.Zoom = clamp(s.Zoom, MinZoom, MaxZoom)
	c.current = s
	c.target = s
}

// Pan moves the target center by a screen-space drag of delta pixels.
// The content follows the pointer, so the center moves against the drag.
func (c *Controller) Pan(delta r2.Vec) {
	if c.current.Zoom <= 0 || !finite(delta.X) || !finite(delta.Y) {
		return
	}
	c.SetTargetCenter(r2.Sub(c.target.Center, r2.Scale(1/c.current.Zoom, delta)))
}

// ZoomAtPoint scales the target zoom by factor while keeping the world point
// under screen fixed. The world point is taken from what is on screen now
// (current zoom and center); the result is written to the target. It
// returns false when nothing changed.
func (c *Controller) ZoomAtPoint(factor float64, screen r2.Vec, rect Rect) bool {
	if !(factor > 0) || !finite(factor) || !rect.valid() || c.current.Zoom <= 0 {
		return false
	}
	if !finite(screen.X) || !finite(screen.Y) {
		return false
	}

	zoom := clamp(c.target.Zoom*factor, MinZoom, MaxZoom)
	if math.Abs(zoom-c.target.Zoom) < ZoomEpsilon {
		return false
	}

	world := c.ScreenToWorld(screen, rect)
	fx, fy := 0.5-screen.X/rect.Width, 0.5-screen.Y/rect.Height
	center := r2.Vec{
		X: world.X + (models.CanvasWidth/zoom)*fx,
		Y: world.Y + (models.CanvasHeight/zoom)*fy,
	}
	if !finite(center.X) || !finite(center.Y) {
		return false
	}
	c.target.Zoom = zoom
	c.target.Center = center
	return true
}

// Tick moves the current state toward the target
func (c *Controller) Tick() {
	c.current.Zoom = approach(c.current.Zoom, c.target.Zoom, c.smoothing, ZoomEpsilon)
	c.current.Center.X = approach(c.current.Center.X, c.target.Center.X, c.smoothing, CenterEpsilon)
	c.current.Center.Y = approach(c.current.Center.Y, c.target.Center.Y, c.smoothing, CenterEpsilon)
}

func approach(cur, target, f, eps float64) float64 {
	d := target - cur
	if math.Abs(d) < eps {
		return target
	}
	next := cur + d*f
	if !finite(next) {
		return target
	}
	return next
}

// Viewport is the visible world rectangle for the current state
func (c *Controller) Viewport() Viewport {
	w := models.CanvasWidth / c.current.Zoom
	h := models.CanvasHeight / c.current.Zoom
	return Viewport{
		MinX:   c.current.Center.X - w/2,
		MinY:   c.current.Center.Y - h/2,
		Width:  w,
		Height: h,
	}
}

// ScreenToWorld maps a pixel inside rect to world coordinates using the current state
func (c *Controller) ScreenToWorld(screen r2.Vec, rect Rect) r2.Vec {
	return r2.Vec{
		X: c.current.Center.X - (models.CanvasWidth/c.current.Zoom)*(0.5-screen.X/rect.Width),
		Y: c.current.Center.Y - (models.CanvasHeight/c.current.Zoom)*(0.5-screen.Y/rect.Height),
	}
}

// WorldToScreen is the inverse of ScreenToWorld
func (c *Controller) WorldToScreen(world r2.Vec, rect Rect) r2.Vec {
	return r2.Vec{
		X: rect.Width * (0.5 + (world.X-c.current.Center.X)*c.current.Zoom/models.CanvasWidth),
		Y: rect.Height * (0.5 + (world.Y-c.current.Center.Y)*c.current.Zoom/models.CanvasHeight),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
