// Package orbit maps orbital elements and phase angles to world positions.
package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"orrery/models"
)

// Tilt flattens the y extent of circular orbits to fake an oblique view
const Tilt = 0.4

// FullTurn is one revolution in radians
const FullTurn = 2 * math.Pi

// Origin is the star center in world coordinates
var Origin = r2.Vec{X: models.CanvasWidth / 2, Y: models.CanvasHeight / 2}

// Normalize wraps an angle into [0, 2π)
func Normalize(angle float64) float64 {
	a := math.Mod(angle, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// math.Mod of a tiny negative value can round up to exactly FullTurn
	if a >= FullTurn {
		a = 0
	}
	return a
}

// Circular returns the point on a tilted circle of radius r around center
func Circular(center r2.Vec, r, angle float64) r2.Vec {
	return r2.Vec{
		X: center.X + r*math.Cos(angle),
		Y: center.Y + r*math.Sin(angle)*Tilt,
	}
}

// Elliptic returns the point on an ellipse with semi-axes a and b,
// rotated by tiltDegrees about center
func Elliptic(center r2.Vec, a, b, tiltDegrees, angle float64) r2.Vec {
	p := r2.Vec{X: a * math.Cos(angle), Y: b * math.Sin(angle)}
	return r2.Add(center, r2.Rotate(p, tiltDegrees*math.Pi/180, r2.Vec{}))
}

// PlanetPosition places a planet around the star
func PlanetPosition(p models.Planet) r2.Vec {
	return Circular(Origin, p.OrbitRadius, p.Angle)
}

// MoonPosition places a moon around its parent's position for the same tick
func MoonPosition(m models.Moon, parent r2.Vec) r2.Vec {
	return Circular(parent, m.OrbitRadius, m.Angle)
}

// CometPosition places the comet on its rotated ellipse
func CometPosition(c models.Comet) r2.Vec {
	return Elliptic(Origin, c.SemiMajorAxis, c.SemiMinorAxis, c.TiltDegrees, c.Angle)
}

// AsteroidPosition places a belt member around the star
func AsteroidPosition(a models.Asteroid) r2.Vec {
	return Circular(Origin, a.OrbitRadius, a.Angle)
}
