package models

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Logical canvas size; the star sits at its center
const (
	CanvasWidth  = 800.0
	CanvasHeight = 600.0
)

// BeltID identifies the asteroid belt as a focus target
const BeltID = "asteroid_belt"

// DefaultBeltSize is the number of asteroids generated for the belt
const DefaultBeltSize = 300

var ErrInvalidCatalog = errors.New("invalid catalog")

var asteroidColors = []string{"#9CA3AF", "#6B7280", "#4B5563", "#78716C"}

// Catalog is the seed data of the system: orbital elements plus display attributes
type Catalog struct {
	Star    Star         `json:"star"`
	Planets []Planet     `json:"planets"`
	Comet   Comet        `json:"comet"`
	Moons   []Moon       `json:"moons"`
	Belt    AsteroidBelt `json:"asteroid_belt"`
}

// Lookup finds a selectable body by id
func (c *Catalog) Lookup(id string) (Body, bool) {
	for _, p := range c.Planets {
		if p.ID == id {
			return p, true
		}
	}
	for _, m := range c.Moons {
		if m.ID == id {
			return m, true
		}
	}
	if c.Comet.ID == id {
		return c.Comet, true
	}
	if c.Belt.ID == id {
		return c.Belt, true
	}
	return nil, false
}

// Bodies returns every selectable body in dependency order
func (c *Catalog) Bodies() []Body {
	bodies := make([]Body, 0, len(c.Planets)+len(c.Moons)+2)
	for _, p := range c.Planets {
		bodies = append(bodies, p)
	}
	for _, m := range c.Moons {
		bodies = append(bodies, m)
	}
	bodies = append(bodies, c.Comet, c.Belt)
	return bodies
}

// Clone returns a deep copy so the seed stays untouched by the integrator
func (c Catalog) Clone() Catalog {
	out := c
	out.Planets = make([]Planet, len(c.Planets))
	for i, p := range c.Planets {
		p.Rings = append([]Ring(nil), p.Rings...)
		out.Planets[i] = p
	}
	out.Moons = append([]Moon(nil), c.Moons...)
	out.Belt.Asteroids = append([]Asteroid(nil), c.Belt.Asteroids...)
	return out
}

// Randomize gives every body a fresh phase angle and regenerates the belt membership
func (c *Catalog) Randomize(rng *rand.Rand, beltSize int) {
	for i := range c.Planets {
		c.Planets[i].Angle = rng.Float64() * 2 * math.Pi
	}
	for i := range c.Moons {
		c.Moons[i].Angle = rng.Float64() * 2 * math.Pi
	}
	c.Comet.Angle = rng.Float64() * 2 * math.Pi
	c.Belt.Asteroids = GenerateAsteroids(rng, beltSize, c.Belt.InnerRadius, c.Belt.OuterRadius)
}

// GenerateAsteroids places count asteroids uniformly inside the [inner, outer) band.
// Outer asteroids move slower.
func GenerateAsteroids(rng *rand.Rand, count int, inner, outer float64) []Asteroid {
	asteroids := make([]Asteroid, 0, count)
	for i := 0; i < count; i++ {
		r := inner + rng.Float64()*(outer-inner)
		asteroids = append(asteroids, Asteroid{
			ID:          i,
			OrbitRadius: r,
			Phase: Phase{
				Angle: rng.Float64() * 2 * math.Pi,
				Speed: 0.006 + 0.003/math.Sqrt(r),
			},
			Color: asteroidColors[rng.Intn(len(asteroidColors))],
		})
	}
	return asteroids
}

// OrphanMoons lists moons whose parent does not resolve to a planet.
// They are tolerated at runtime and simply never rendered.
func (c *Catalog) OrphanMoons() []string {
	planets := make(map[string]struct{}, len(c.Planets))
	for _, p := range c.Planets {
		planets[p.ID] = struct{}{}
	}
	var orphans []string
	for _, m := range c.Moons {
		if _, ok := planets[m.ParentID]; !ok {
			orphans = append(orphans, m.ID)
		}
	}
	return orphans
}

// Validate checks ids, geometry and colors
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{})
	check := func(id, color string, radius float64) error {
		if id == "" {
			return fmt.Errorf("%w: body with empty id", ErrInvalidCatalog)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, id)
		}
		seen[id] = struct{}{}
		if radius <= 0 {
			return fmt.Errorf("%w: %s: non-positive radius", ErrInvalidCatalog, id)
		}
		if _, err := colorful.Hex(color); err != nil {
			return fmt.Errorf("%w: %s: color %q: %v", ErrInvalidCatalog, id, color, err)
		}
		return nil
	}

	if _, err := colorful.Hex(c.Star.Color); err != nil {
		return fmt.Errorf("%w: star color %q: %v", ErrInvalidCatalog, c.Star.Color, err)
	}
	for _, p := range c.Planets {
		if err := check(p.ID, p.Color, p.Radius); err != nil {
			return err
		}
		if p.OrbitRadius <= 0 {
			return fmt.Errorf("%w: %s: non-positive orbit radius", ErrInvalidCatalog, p.ID)
		}
	}
	for _, m := range c.Moons {
		if err := check(m.ID, m.Color, m.Radius); err != nil {
			return err
		}
		if m.OrbitRadius <= 0 {
			return fmt.Errorf("%w: %s: non-positive orbit radius", ErrInvalidCatalog, m.ID)
		}
	}
	if err := check(c.Comet.ID, c.Comet.Color, c.Comet.Radius); err != nil {
		return err
	}
	if c.Comet.SemiMajorAxis <= 0 || c.Comet.SemiMinorAxis <= 0 {
		return fmt.Errorf("%w: %s: non-positive semi-axis", ErrInvalidCatalog, c.Comet.ID)
	}
	if _, dup := seen[c.Belt.ID]; dup || c.Belt.ID == "" {
		return fmt.Errorf("%w: bad belt id %q", ErrInvalidCatalog, c.Belt.ID)
	}
	if c.Belt.InnerRadius <= 0 || c.Belt.OuterRadius <= c.Belt.InnerRadius {
		return fmt.Errorf("%w: belt band [%g, %g]", ErrInvalidCatalog, c.Belt.InnerRadius, c.Belt.OuterRadius)
	}
	return nil
}
