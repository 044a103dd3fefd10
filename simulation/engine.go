// Package simulation runs the physics and camera loops over one owned model
// and publishes immutable frames for readers.
package simulation

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"gonum.org/v1/gonum/spatial/r2"

	"orrery/camera"
	"orrery/focus"
	"orrery/interaction"
	"orrery/metrics"
	"orrery/models"
	"orrery/orbit"
	"orrery/physics"
)

const (
	loopPhysics = "physics"
	loopCamera  = "camera"
)

// Options configures an Engine
type Options struct {
	PhysicsInterval time.Duration
	CameraInterval  time.Duration
	BeltSize        int
	Seed            int64 // 0 picks a time based seed
	Logger          kitlog.Logger
	Metrics         *metrics.Collector
}

// Engine serializes every mutation of the model behind one mutex. Each
// mutation ends by publishing a fresh Frame, so readers never observe a
// partially applied tick.
type Engine struct {
	mu     sync.Mutex
	clock  *physics.Clock
	cam    *camera.Controller
	mapper *interaction.Mapper
	snap   orbit.Snapshot
	seq    uint64

	frame atomic.Pointer[Frame]

	physicsInterval time.Duration
	cameraInterval  time.Duration
	lastPhysics     time.Time

	logger  kitlog.Logger
	metrics *metrics.Collector

	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New validates the seed catalog and builds an engine with random phases.
// The loops are not started.
func New(seed models.Catalog, opts Options) (*Engine, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	if opts.PhysicsInterval <= 0 {
		opts.PhysicsInterval = physics.ReferenceFrame
	}
	if opts.CameraInterval <= 0 {
		opts.CameraInterval = physics.ReferenceFrame
	}
	if opts.Logger == nil {
		opts.Logger = kitlog.NewNopLogger()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	logger := kitlog.With(opts.Logger, "component", "simulation")
	for _, id := range seed.OrphanMoons() {
		level.Warn(logger).Log("msg", "moon parent does not resolve, moon will not be rendered", "moon", id)
	}

	e := &Engine{
		physicsInterval: opts.PhysicsInterval,
		cameraInterval:  opts.CameraInterval,
		logger:          logger,
		metrics:         opts.Metrics,
		stopChan:        make(chan struct{}),
	}
	e.clock = physics.NewClock(seed, rand.New(rand.NewSource(opts.Seed)), opts.BeltSize)
	e.clock.SetTickInterval(opts.PhysicsInterval)
	e.cam = camera.New(orbit.Origin)
	e.mapper = interaction.NewMapper(e.cam, e.clock, orbit.Origin)
	e.snap = orbit.Resolve(e.clock.Catalog())
	e.publish()
	return e, nil
}

// Start runs both loops until ctx is done or Stop is called
func (e *Engine) Start(ctx context.Context) {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	level.Info(e.logger).Log("msg", "starting loops", "physics_interval", e.physicsInterval, "camera_interval", e.cameraInterval)

	e.mu.Lock()
	e.lastPhysics = time.Now()
	e.mu.Unlock()

	e.wg.Add(2)
	go e.loop(ctx, e.physicsInterval, func(now time.Time) { e.physicsTick(now) })
	go e.loop(ctx, e.cameraInterval, func(time.Time) { e.CameraTick() })
}

// Stop halts both loops and waits for them to exit
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
		if e.running.Load() {
			e.wg.Wait()
			level.Info(e.logger).Log("msg", "loops stopped")
		}
	})
}

func (e *Engine) loop(ctx context.Context, interval time.Duration, tick func(time.Time)) {
	defer e.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopChan:
			return
		case now := <-ticker.C:
			tick(now)
		}
	}
}

func (e *Engine) physicsTick(now time.Time) {
	e.mu.Lock()
	elapsed := now.Sub(e.lastPhysics)
	e.lastPhysics = now
	e.mu.Unlock()
	e.PhysicsTick(elapsed)
}

// PhysicsTick advances the clock by elapsed, then retargets the camera on
// the focused body using the positions of this same tick
func (e *Engine) PhysicsTick(elapsed time.Duration) {
	start := time.Now()
	e.mu.Lock()
	e.snap = e.clock.Advance(elapsed)
	e.follow()
	e.publish()
	e.mu.Unlock()
	e.metrics.RecordTick(loopPhysics, time.Since(start))
}

func (e *Engine) follow() {
	selected := e.mapper.Selected()
	p, status := focus.Track(selected, e.snap)
	switch status {
	case focus.Following:
		e.cam.SetTargetCenter(p)
	case focus.Lost:
		e.mapper.ClearFocus()
		level.Warn(e.logger).Log("msg", "focused body vanished, focus cleared", "body", selected)
	}
}

// CameraTick moves the camera one step toward its target; it runs whether
// or not physics is paused
func (e *Engine) CameraTick() {
	start := time.Now()
	e.mu.Lock()
	e.cam.Tick()
	e.publish()
	zoom, focused := e.cam.Current().Zoom, e.mapper.Mode() == interaction.Focused
	e.mu.Unlock()
	e.metrics.ObserveCamera(zoom, focused)
	e.metrics.RecordTick(loopCamera, time.Since(start))
}

// Frame returns the latest published frame; it must not be modified
func (e *Engine) Frame() *Frame {
	return e.frame.Load()
}

// Catalog returns a copy of the live catalog
func (e *Engine) Catalog() models.Catalog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Catalog().Clone()
}

// do runs an intent under the lock and publishes the result
func (e *Engine) do(event string, fn func() error) (*Frame, error) {
	e.mu.Lock()
	err := fn()
	e.publish()
	f := e.frame.Load()
	e.mu.Unlock()

	e.metrics.RecordEvent(event, err)
	if err != nil {
		level.Debug(e.logger).Log("msg", "intent rejected", "event", event, "err", err)
	}
	return f, err
}

// Focus toggles focus on a body by id
func (e *Engine) Focus(id string) (*Frame, error) {
	return e.do("focus", func() error {
		return e.mapper.FocusOrToggle(id, e.snap)
	})
}

// Click hit-tests a screen point and focuses whatever is under it
func (e *Engine) Click(screen r2.Vec, rect camera.Rect) (*Frame, error) {
	return e.do("click", func() error {
		_, err := e.mapper.Click(screen, rect, e.snap)
		return err
	})
}

// PanStart begins a drag at the pointer
func (e *Engine) PanStart(pointer r2.Vec) (*Frame, error) {
	return e.do("pan_start", func() error { return e.mapper.PanStart(pointer) })
}

// PanMove pans by the pointer movement since the last event
func (e *Engine) PanMove(pointer r2.Vec) (*Frame, error) {
	return e.do("pan_move", func() error {
		e.mapper.PanMove(pointer)
		return nil
	})
}

// PanEnd finishes a drag
func (e *Engine) PanEnd() (*Frame, error) {
	return e.do("pan_end", func() error {
		e.mapper.PanEnd()
		return nil
	})
}

// Pan applies a screen-space drag delta
func (e *Engine) Pan(delta r2.Vec) (*Frame, error) {
	return e.do("pan", func() error { return e.mapper.PanBy(delta) })
}

// Wheel zooms at the cursor; negative deltaY zooms in
func (e *Engine) Wheel(deltaY float64, screen r2.Vec, rect camera.Rect) (*Frame, error) {
	return e.do("wheel", func() error { return e.mapper.Wheel(deltaY, screen, rect) })
}

// ZoomIn steps the free camera zoom up
func (e *Engine) ZoomIn() (*Frame, error) {
	return e.do("zoom_in", e.mapper.ZoomIn)
}

// ZoomOut steps the free camera zoom down
func (e *Engine) ZoomOut() (*Frame, error) {
	return e.do("zoom_out", e.mapper.ZoomOut)
}

// ResetZoom drops any focus and returns to the home view
func (e *Engine) ResetZoom() (*Frame, error) {
	return e.do("reset_zoom", func() error {
		e.mapper.ResetZoom()
		return nil
	})
}

// TogglePlayPause switches the physics clock between running and paused
func (e *Engine) TogglePlayPause() (*Frame, error) {
	return e.do("toggle", func() error {
		state := e.clock.Toggle()
		level.Info(e.logger).Log("msg", "physics clock toggled", "state", state)
		return nil
	})
}

// SetSpeed sets the speed multiplier. Values are expected in the positive
// range the controls offer; anything else freezes or reverses motion.
func (e *Engine) SetSpeed(multiplier float64) (*Frame, error) {
	f, err := e.do("speed", func() error {
		e.clock.SetSpeed(multiplier)
		return nil
	})
	e.metrics.ObserveSpeed(multiplier)
	return f, err
}

// FullReset reseeds every body, regenerates the belt and snaps the camera home
func (e *Engine) FullReset() (*Frame, error) {
	f, err := e.do("reset", func() error {
		e.mapper.FullReset()
		e.snap = orbit.Resolve(e.clock.Catalog())
		return nil
	})
	e.metrics.ObserveSpeed(1)
	level.Info(e.logger).Log("msg", "full reset")
	return f, err
}

// publish must be called with mu held
func (e *Engine) publish() {
	e.seq++
	cur, tgt := e.cam.Current(), e.cam.Target()
	f := &Frame{
		Seq:    e.seq,
		Bodies: e.snap,
		Camera: CameraView{
			Zoom:         cur.Zoom,
			Center:       orbit.Point{X: cur.Center.X, Y: cur.Center.Y},
			TargetZoom:   tgt.Zoom,
			TargetCenter: orbit.Point{X: tgt.Center.X, Y: tgt.Center.Y},
			Viewport:     e.cam.Viewport(),
		},
		Focus: FocusView{
			Mode:          e.mapper.Mode().String(),
			SelectedID:    e.mapper.Selected(),
			PersistedZoom: e.mapper.PersistedZoom(),
			Panning:       e.mapper.Panning(),
		},
		Clock: ClockView{
			State: e.clock.State().String(),
			Speed: e.clock.Speed(),
			Ticks: e.clock.Ticks(),
		},
	}
	e.frame.Store(f)
}
