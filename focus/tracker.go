// Package focus derives the camera target for a focused body.
package focus

import (
	"gonum.org/v1/gonum/spatial/r2"

	"orrery/orbit"
)

// Status reports what Track found
type Status int

const (
	// Idle means nothing is focused
	Idle Status = iota
	// Following means the returned point is the new camera target
	Following
	// Lost means the focused id matched no body and focus should be cleared
	Lost
)

// String names the status for logs
func (s Status) String() string {
	switch s {
	case Following:
		return "following"
	case Lost:
		return "lost"
	default:
		return "idle"
	}
}

// Track returns where the camera should center for the selected body in
// this tick's snapshot. An empty id means no focus. The belt is tracked
// as a whole at the star center.
func Track(selected string, snap orbit.Snapshot) (r2.Vec, Status) {
	if selected == "" {
		return r2.Vec{}, Idle
	}
	if selected == snap.Belt.ID {
		return snap.Belt.Center.Vec(), Following
	}
	if p, ok := snap.Lookup(selected); ok {
		return p, Following
	}
	return r2.Vec{}, Lost
}
