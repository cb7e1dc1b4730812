package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring parameters for CameraMotion: moderate speed, critically damped.
const (
	motionFrequency = 6.0
	motionDamping   = 1.0
)

// axis is one spring-driven value.
type axis struct {
	pos, vel float64
}

// CameraMotion eases a displayed view toward a target view with harmonica
// springs. Azimuth always takes the short way around.
type CameraMotion struct {
	spring harmonica.Spring

	azimuth, altitude, zoom axis
	started                 bool
}

// NewCameraMotion creates a motion smoother stepped fps times per second.
func NewCameraMotion(fps int) *CameraMotion {
	if fps <= 0 {
		fps = 60
	}
	return &CameraMotion{
		spring: harmonica.NewSpring(harmonica.FPS(fps), motionFrequency, motionDamping),
	}
}

// Snap jumps to target with no remaining velocity.
func (m *CameraMotion) Snap(target View) View {
	m.azimuth = axis{pos: target.Azimuth}
	m.altitude = axis{pos: target.Altitude}
	m.zoom = axis{pos: target.Zoom}
	m.started = true
	return target
}

// Update advances one frame toward target and returns the view to display.
// The first call snaps.
func (m *CameraMotion) Update(target View) View {
	if !m.started {
		return m.Snap(target)
	}

	// Unwrap the target next to the current azimuth so a step across
	// +/-pi does not spin the long way.
	goal := m.azimuth.pos + math.Remainder(target.Azimuth-m.azimuth.pos, 2*math.Pi)
	m.azimuth.pos, m.azimuth.vel = m.spring.Update(m.azimuth.pos, m.azimuth.vel, goal)
	m.altitude.pos, m.altitude.vel = m.spring.Update(m.altitude.pos, m.altitude.vel, target.Altitude)
	m.zoom.pos, m.zoom.vel = m.spring.Update(m.zoom.pos, m.zoom.vel, target.Zoom)

	m.azimuth.pos = NormalizeAngle(m.azimuth.pos)
	return View{
		Azimuth:  m.azimuth.pos,
		Altitude: m.altitude.pos,
		Zoom:     m.zoom.pos,
	}
}

// Settled reports whether the displayed view is within eps of target on
// every axis and has almost stopped.
func (m *CameraMotion) Settled(target View, eps float64) bool {
	near := func(a axis, goal float64) bool {
		return math.Abs(a.pos-goal) < eps && math.Abs(a.vel) < eps
	}
	dAz := math.Remainder(target.Azimuth-m.azimuth.pos, 2*math.Pi)
	return m.started &&
		math.Abs(dAz) < eps && math.Abs(m.azimuth.vel) < eps &&
		near(m.altitude, target.Altitude) &&
		near(m.zoom, target.Zoom)
}
