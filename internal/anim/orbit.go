package anim

import "github.com/san-kum/mechlab/internal/render"

// Orbiter is implemented by scripts that project 3D geometry. Camera
// returns the live camera; frames built after a change use the new view.
type Orbiter interface {
	Camera() *render.Camera
}

// Orbit steps, in degrees, for one key press in the players.
const (
	OrbitAzimStep = 15.0
	OrbitElevStep = 10.0
)

// Orbit turns the camera of a. It reports false when a is flat, in which
// case players keep their cached frames.
func Orbit(a Animation, dAzim, dElev float64) bool {
	o, ok := a.(Orbiter)
	if !ok {
		return false
	}
	o.Camera().Orbit(dAzim, dElev)
	return true
}

// Zoom zooms the camera of a in or out, reporting false when a is flat.
func Zoom(a Animation, in bool) bool {
	o, ok := a.(Orbiter)
	if !ok {
		return false
	}
	if in {
		o.Camera().ZoomIn()
	} else {
		o.Camera().ZoomOut()
	}
	return true
}
