package orbit

import (
	"gonum.org/v1/gonum/spatial/r2"

	"orrery/models"
)

// Point is a world coordinate as rendered to clients
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func pointOf(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Vec converts back to a gonum vector
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// BodyPosition is a resolved selectable body
type BodyPosition struct {
	ID       string      `json:"id"`
	Kind     models.Kind `json:"kind"`
	Radius   float64     `json:"radius"`
	ParentID string      `json:"parent_id,omitempty"`
	Point
}

// AsteroidPoint is a resolved belt member
type AsteroidPoint struct {
	ID int `json:"id"`
	Point
}

// BeltPosition is the resolved asteroid belt, centered on the star
type BeltPosition struct {
	ID          string          `json:"id"`
	Center      Point           `json:"center"`
	InnerRadius float64         `json:"inner_radius"`
	OuterRadius float64         `json:"outer_radius"`
	Asteroids   []AsteroidPoint `json:"asteroids"`
}

// Snapshot holds the world position of every body for one physics tick.
// It is never mutated after Resolve returns.
type Snapshot struct {
	Planets []BodyPosition `json:"planets"`
	Comet   BodyPosition   `json:"comet"`
	Moons   []BodyPosition `json:"moons"`
	Belt    BeltPosition   `json:"asteroid_belt"`

	index map[string]r2.Vec
}

// Resolve derives positions for the whole catalog: planets first, then the
// moons that reference them. Moons with an unknown parent are omitted.
func Resolve(c *models.Catalog) Snapshot {
	s := Snapshot{
		Planets: make([]BodyPosition, 0, len(c.Planets)),
		Moons:   make([]BodyPosition, 0, len(c.Moons)),
		index:   make(map[string]r2.Vec, len(c.Planets)+len(c.Moons)+1),
	}

	planets := make(map[string]r2.Vec, len(c.Planets))
	for _, p := range c.Planets {
		pos := PlanetPosition(p)
		planets[p.ID] = pos
		s.index[p.ID] = pos
		s.Planets = append(s.Planets, BodyPosition{ID: p.ID, Kind: models.KindPlanet, Radius: p.Radius, Point: pointOf(pos)})
	}

	for _, m := range c.Moons {
		parent, ok := planets[m.ParentID]
		if !ok {
			continue
		}
		pos := MoonPosition(m, parent)
		s.index[m.ID] = pos
		s.Moons = append(s.Moons, BodyPosition{ID: m.ID, Kind: models.KindMoon, Radius: m.Radius, ParentID: m.ParentID, Point: pointOf(pos)})
	}

	comet := CometPosition(c.Comet)
	s.index[c.Comet.ID] = comet
	s.Comet = BodyPosition{ID: c.Comet.ID, Kind: models.KindComet, Radius: c.Comet.Radius, Point: pointOf(comet)}

	s.Belt = BeltPosition{
		ID:          c.Belt.ID,
		Center:      pointOf(Origin),
		InnerRadius: c.Belt.InnerRadius,
		OuterRadius: c.Belt.OuterRadius,
		Asteroids:   make([]AsteroidPoint, len(c.Belt.Asteroids)),
	}
	for i, a := range c.Belt.Asteroids {
		s.Belt.Asteroids[i] = AsteroidPoint{ID: a.ID, Point: pointOf(AsteroidPosition(a))}
	}
	return s
}

// Lookup returns the position of a planet, moon or the comet
func (s Snapshot) Lookup(id string) (r2.Vec, bool) {
	v, ok := s.index[id]
	return v, ok
}
