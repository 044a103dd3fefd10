// Package interaction turns user intents into camera targets and focus
// transitions.
package interaction

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"orrery/camera"
	"orrery/orbit"
)

const (
	// FocusedZoom is the zoom used when a point body is focused
	FocusedZoom = 4.0
	// BeltZoom is the overview zoom used when the asteroid belt is focused
	BeltZoom = 0.8
	// ZoomStep is the factor applied by zoom buttons and wheel notches
	ZoomStep = 1.25
)

var (
	ErrUnknownBody = errors.New("unknown body")
	ErrFocused     = errors.New("camera is locked to a focused body")
)

// Resetter restores the simulated system to a fresh random state
type Resetter interface {
	Reset()
}

// Mode is the focus state of the mapper
type Mode int

const (
	Free Mode = iota
	Focused
)

// String is the mode name used in frames
func (m Mode) String() string {
	if m == Focused {
		return "focused"
	}
	return "free"
}

// Mapper owns the focus state and drives the camera through its target API
type Mapper struct {
	cam   *camera.Controller
	world Resetter
	home  r2.Vec

	selected      string
	persistedZoom float64

	panning     bool
	lastPointer r2.Vec
}

// NewMapper starts in Free mode with a persisted zoom of 1
func NewMapper(cam *camera.Controller, world Resetter, home r2.Vec) *Mapper {
	return &Mapper{
		cam:           cam,
		world:         world,
		home:          home,
		persistedZoom: 1,
	}
}

// Mode is Focused while a body is selected
func (m *Mapper) Mode() Mode {
	if m.selected != "" {
		return Focused
	}
	return Free
}

// Selected returns the focused body id, empty when Free
func (m *Mapper) Selected() string { return m.selected }

// PersistedZoom is the zoom restored when focus ends
func (m *Mapper) PersistedZoom() float64 { return m.persistedZoom }

// Panning reports whether a drag is in progress
func (m *Mapper) Panning() bool { return m.panning }

// FocusOrToggle focuses id, or unfocuses when id is already focused.
// The snapshot must be the latest published one.
func (m *Mapper) FocusOrToggle(id string, snap orbit.Snapshot) error {
	if id != "" && id == m.selected {
		m.unfocus()
		return nil
	}

	var target r2.Vec
	zoom := FocusedZoom
	switch p, ok := snap.Lookup(id); {
	case id != "" && id == snap.Belt.ID:
		target, zoom = m.home, BeltZoom
	case ok:
		target = p
	default:
		return fmt.Errorf("focus %q: %w", id, ErrUnknownBody)
	}

	if m.selected == "" {
		m.persistedZoom = m.cam.Current().Zoom
	}
	m.selected = id
	m.endPan()
	m.cam.SetTargetZoom(zoom)
	m.cam.SetTargetCenter(target)
	return nil
}

func (m *Mapper) unfocus() {
	m.selected = ""
	m.cam.SetTargetZoom(m.persistedZoom)
	m.cam.SetTargetCenter(m.home)
}

// ClearFocus drops a focus whose body no longer exists. Camera targets are
// left where the last tracked position put them.
func (m *Mapper) ClearFocus() {
	m.selected = ""
}

// Click hit-tests a screen point and focuses or toggles the body under it.
// A click on empty space while focused ends the focus. It returns the id of
// the body hit, if any.
func (m *Mapper) Click(screen r2.Vec, rect camera.Rect, snap orbit.Snapshot) (string, error) {
	if rect.Width <= 0 || rect.Height <= 0 || m.cam.Current().Zoom <= 0 {
		return "", nil
	}
	id := HitTest(m.cam.ScreenToWorld(screen, rect), snap)
	if id == "" {
		if m.selected != "" {
			m.unfocus()
		}
		return "", nil
	}
	return id, m.FocusOrToggle(id, snap)
}

// PanStart begins a drag at the pointer position
func (m *Mapper) PanStart(pointer r2.Vec) error {
	if m.selected != "" {
		return ErrFocused
	}
	m.panning = true
	m.lastPointer = pointer
	return nil
}

// PanMove pans by the pointer movement since the last event
func (m *Mapper) PanMove(pointer r2.Vec) {
	if !m.panning || m.selected != "" {
		return
	}
	delta := r2.Sub(pointer, m.lastPointer)
	m.lastPointer = pointer
	m.cam.Pan(delta)
}

// PanEnd finishes a drag; also used when the pointer leaves the canvas
func (m *Mapper) PanEnd() { m.endPan() }

func (m *Mapper) endPan() {
	m.panning = false
	m.lastPointer = r2.Vec{}
}

// PanBy pans by an already computed screen delta
func (m *Mapper) PanBy(delta r2.Vec) error {
	if m.selected != "" {
		return ErrFocused
	}
	m.cam.Pan(delta)
	return nil
}

// Wheel zooms at the cursor; negative deltaY zooms in
func (m *Mapper) Wheel(deltaY float64, screen r2.Vec, rect camera.Rect) error {
	if m.selected != "" {
		return ErrFocused
	}
	if deltaY == 0 {
		return nil
	}
	factor := ZoomStep
	if deltaY > 0 {
		factor = 1 / ZoomStep
	}
	if m.cam.ZoomAtPoint(factor, screen, rect) {
		m.persistedZoom = m.cam.Target().Zoom
	}
	return nil
}

// ZoomIn steps the target zoom up; the result becomes the restore point
func (m *Mapper) ZoomIn() error { return m.zoomStep(ZoomStep) }

// ZoomOut steps the target zoom down; the result becomes the restore point
func (m *Mapper) ZoomOut() error { return m.zoomStep(1 / ZoomStep) }

func (m *Mapper) zoomStep(factor float64) error {
	if m.selected != "" {
		return ErrFocused
	}
	m.persistedZoom = m.cam.SetTargetZoom(m.cam.Target().Zoom * factor)
	return nil
}

// ResetZoom returns to the home view regardless of focus
func (m *Mapper) ResetZoom() {
	m.selected = ""
	m.endPan()
	m.persistedZoom = m.cam.SetTargetZoom(1)
	m.cam.SetTargetCenter(m.home)
}

// FullReset reseeds the world and snaps the camera home without a transition
func (m *Mapper) FullReset() {
	m.selected = ""
	m.endPan()
	m.persistedZoom = 1
	m.world.Reset()
	m.cam.Jump(camera.State{Zoom: 1, Center: m.home})
}
