package models

// Kind discriminates the celestial body variants
type Kind string

const (
	KindPlanet Kind = "planet"
	KindMoon   Kind = "moon"
	KindComet  Kind = "comet"
	KindBelt   Kind = "asteroid_belt"
)

// Body is implemented by every selectable celestial body in the catalog
type Body interface {
	BodyID() string
	Kind() Kind
}

// Phase is the mutable part of an orbit
type Phase struct {
	Angle float64 `json:"current_angle"` // radians, kept in [0, 2π)
	Speed float64 `json:"speed"`         // angular speed factor
}

// Ring is a decorative planetary ring, radii relative to the planet radius
type Ring struct {
	InnerRadiusFactor float64 `json:"inner_radius_factor"`
	OuterRadiusFactor float64 `json:"outer_radius_factor"`
	Color             string  `json:"color"`
	Opacity           float64 `json:"opacity"` // 0..1
}

// Planet orbits the star on a tilted circle
type Planet struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`        // hex color
	Radius      float64 `json:"radius"`       // visual radius, world units
	OrbitRadius float64 `json:"orbit_radius"` // distance from star, world units
	Phase
	Description string `json:"description"`
	Rings       []Ring `json:"rings,omitempty"`
}

// BodyID and Kind implement Body
func (p Planet) BodyID() string { return p.ID }
func (p Planet) Kind() Kind     { return KindPlanet }

// Moon orbits its parent planet on a tilted circle
type Moon struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Radius      float64 `json:"radius"`
	OrbitRadius float64 `json:"orbit_radius"` // distance from parent planet
	Phase
	ParentID    string `json:"parent_id"`
	Description string `json:"description"`
}

// BodyID and Kind implement Body
func (m Moon) BodyID() string { return m.ID }
func (m Moon) Kind() Kind     { return KindMoon }

// Comet follows an ellipse rotated about the star
type Comet struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	Radius        float64 `json:"radius"`
	SemiMajorAxis float64 `json:"semi_major_axis"` // a
	SemiMinorAxis float64 `json:"semi_minor_axis"` // b
	TiltDegrees   float64 `json:"tilt_degrees"`    // rotation of the whole ellipse
	Phase
	Description string `json:"description"`
}

// BodyID and Kind implement Body
func (c Comet) BodyID() string { return c.ID }
func (c Comet) Kind() Kind     { return KindComet }

// Asteroid is a lightweight belt member, not individually selectable
type Asteroid struct {
	ID          int     `json:"id"`
	OrbitRadius float64 `json:"orbit_radius"`
	Phase
	Color string `json:"color"`
}

// AsteroidBelt is a torus of independent asteroid orbits
type AsteroidBelt struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InnerRadius float64    `json:"inner_radius"`
	OuterRadius float64    `json:"outer_radius"`
	Asteroids   []Asteroid `json:"asteroids"`
}

// BodyID and Kind implement Body
func (b AsteroidBelt) BodyID() string { return b.ID }
func (b AsteroidBelt) Kind() Kind     { return KindBelt }

// Star sits at the center of the system
type Star struct {
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
}
