package interaction

import (
	"gonum.org/v1/gonum/spatial/r2"

	"orrery/orbit"
)

// HitSlop widens every body so small ones stay clickable, in world units
const HitSlop = 2.0

// HitTest returns the id of the body under a world point, or "".
// Moons are checked before the comet and planets since they are drawn on
// top; the belt is hit anywhere inside its tilted annulus.
func HitTest(p r2.Vec, snap orbit.Snapshot) string {
	if id := nearest(p, snap.Moons); id != "" {
		return id
	}
	if within(p, snap.Comet) {
		return snap.Comet.ID
	}
	if id := nearest(p, snap.Planets); id != "" {
		return id
	}

	// undo the orbit tilt so the annulus becomes circular
	d := r2.Sub(p, snap.Belt.Center.Vec())
	d.Y /= orbit.Tilt
	if r := r2.Norm(d); r >= snap.Belt.InnerRadius && r <= snap.Belt.OuterRadius {
		return snap.Belt.ID
	}
	return ""
}

func within(p r2.Vec, b orbit.BodyPosition) bool {
	return b.ID != "" && r2.Norm(r2.Sub(p, b.Vec())) <= b.Radius+HitSlop
}

func nearest(p r2.Vec, bodies []orbit.BodyPosition) string {
	best, bestDist := "", 0.0
	for _, b := range bodies {
		if !within(p, b) {
			continue
		}
		if d := r2.Norm(r2.Sub(p, b.Vec())); best == "" || d < bestDist {
			best, bestDist = b.ID, d
		}
	}
	return best
}
