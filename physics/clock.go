// Package physics advances orbital phase angles over simulation time.
package physics

import (
	"math/rand"
	"time"

	"orrery/models"
	"orrery/orbit"
)

// BaseStep is the phase advance, in radians per unit speed factor,
// of one reference frame at speed multiplier 1
const BaseStep = 0.1

// ReferenceFrame is the frame duration BaseStep is calibrated for
const ReferenceFrame = time.Second / 60

// defaultMaxElapsed caps a single advance so a stalled loop does not
// teleport bodies
const defaultMaxElapsed = 10 * ReferenceFrame

// State of the clock
type State int

const (
	Running State = iota
	Paused
)

// String is the state name used in frames and logs
func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// Clock owns the phase angles of a catalog and advances them per tick
type Clock struct {
	catalog  *models.Catalog
	seed     models.Catalog
	rng      *rand.Rand
	beltSize int

	state      State
	speed      float64
	ticks      uint64
	maxElapsed time.Duration
}

// NewClock takes ownership of a randomized copy of seed.
// The rng is used for the initial phases and for every full reset.
func NewClock(seed models.Catalog, rng *rand.Rand, beltSize int) *Clock {
	c := &Clock{
		seed:       seed.Clone(),
		rng:        rng,
		beltSize:   beltSize,
		maxElapsed: defaultMaxElapsed,
	}
	c.Reset()
	return c
}

// Catalog exposes the live catalog; callers must not mutate it
func (c *Clock) Catalog() *models.Catalog { return c.catalog }

// State reports whether the clock is running or paused
func (c *Clock) State() State { return c.state }

// Speed is the current speed multiplier
func (c *Clock) Speed() float64 { return c.speed }

// Ticks counts the advancing ticks since the last reset
func (c *Clock) Ticks() uint64 { return c.ticks }

// SetSpeed sets the speed multiplier; no range is enforced here
func (c *Clock) SetSpeed(m float64) { c.speed = m }

// SetTickInterval widens the stall cap to two ticks when the clock is
// driven slower than the default cap allows
func (c *Clock) SetTickInterval(d time.Duration) {
	c.maxElapsed = max(defaultMaxElapsed, 2*d)
}

// Toggle switches between Running and Paused and returns the new state
func (c *Clock) Toggle() State {
	if c.state == Running {
		c.state = Paused
	} else {
		c.state = Running
	}
	return c.state
}

// Reset restores the seed with fresh random phases and a regenerated belt,
// speed 1 and Running
func (c *Clock) Reset() {
	cat := c.seed.Clone()
	cat.Randomize(c.rng, c.beltSize)
	c.catalog = &cat
	c.state = Running
	c.speed = 1
	c.ticks = 0
}

// Step advances one reference frame
func (c *Clock) Step() orbit.Snapshot {
	return c.Advance(ReferenceFrame)
}

// Advance moves every body by the phase accumulated over elapsed at the
// current speed and returns the positions for the new phases. While paused
// only the positions are recomputed.
func (c *Clock) Advance(elapsed time.Duration) orbit.Snapshot {
	if c.state == Running && elapsed > 0 {
		if elapsed > c.maxElapsed {
			elapsed = c.maxElapsed
		}
		frames := float64(elapsed) / float64(ReferenceFrame)
		c.advance(BaseStep * c.speed * frames)
		c.ticks++
	}
	return orbit.Resolve(c.catalog)
}

func (c *Clock) advance(delta float64) {
	cat := c.catalog
	for i := range cat.Planets {
		step(&cat.Planets[i].Phase, delta)
	}
	step(&cat.Comet.Phase, delta)
	for i := range cat.Moons {
		step(&cat.Moons[i].Phase, delta)
	}
	for i := range cat.Belt.Asteroids {
		step(&cat.Belt.Asteroids[i].Phase, delta)
	}
}

func step(p *models.Phase, delta float64) {
	p.Angle = orbit.Normalize(p.Angle + p.Speed*delta)
}
