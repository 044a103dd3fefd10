package simulation

import (
	"orrery/camera"
	"orrery/orbit"
)

// Frame is one published view of the simulation for renderers
type Frame struct {
	Seq    uint64         `json:"seq"`
	Bodies orbit.Snapshot `json:"bodies"`
	Camera CameraView     `json:"camera"`
	Focus  FocusView      `json:"focus"`
	Clock  ClockView      `json:"clock"`
}

// CameraView is the camera state and visible world rectangle
type CameraView struct {
	Zoom         float64         `json:"zoom"`
	Center       orbit.Point     `json:"center"`
	TargetZoom   float64         `json:"target_zoom"`
	TargetCenter orbit.Point     `json:"target_center"`
	Viewport     camera.Viewport `json:"viewport"`
}

// FocusView is the focus state machine as seen by clients
type FocusView struct {
	Mode          string  `json:"mode"`
	SelectedID    string  `json:"selected_body_id,omitempty"`
	PersistedZoom float64 `json:"persisted_zoom"`
	Panning       bool    `json:"panning"`
}

// ClockView is the physics clock state
type ClockView struct {
	State string  `json:"state"`
	Speed float64 `json:"speed"`
	Ticks uint64  `json:"ticks"`
}
