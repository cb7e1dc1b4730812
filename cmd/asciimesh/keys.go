package main

import "github.com/taigrr/asciimesh/pkg/render"

// action is a viewer command bound to keys.
type action int

const (
	actNone action = iota
	actRotateLeft
	actRotateRight
	actRotateUp
	actRotateDown
	actZoomIn
	actZoomOut
	actReset
	actToggleHUD
	actQuit
)

var keyBindings = []struct {
	keys []string
	act  action
}{
	{[]string{"left", "h", "a"}, actRotateLeft},
	{[]string{"right", "l", "d"}, actRotateRight},
	{[]string{"up", "k", "w"}, actRotateUp},
	{[]string{"down", "j", "s"}, actRotateDown},
	{[]string{"+", "=", "i"}, actZoomIn},
	{[]string{"-", "o"}, actZoomOut},
	{[]string{"r"}, actReset},
	{[]string{"tab"}, actToggleHUD},
	{[]string{"q", "esc", "escape", "ctrl+c"}, actQuit},
}

// lookupAction returns the first action whose keys match.
func lookupAction(match func(keys ...string) bool) action {
	for _, b := range keyBindings {
		if match(b.keys...) {
			return b.act
		}
	}
	return actNone
}

// applyCamera performs camera actions. It reports whether a was one.
func applyCamera(cam *render.Camera, a action) bool {
	switch a {
	case actRotateLeft:
		cam.RotateLeft()
	case actRotateRight:
		cam.RotateRight()
	case actRotateUp:
		cam.RotateUp()
	case actRotateDown:
		cam.RotateDown()
	case actZoomIn:
		cam.ZoomIn()
	case actZoomOut:
		cam.ZoomOut()
	case actReset:
		cam.Reset()
	default:
		return false
	}
	return true
}
