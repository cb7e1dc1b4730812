package render

import (
	"math"
)

// View is a camera pose: orbit angles in radians and an orthographic zoom.
type View struct {
	Azimuth  float64
	Altitude float64
	Zoom     float64
}

// Camera orbits the origin. Azimuth wraps to (-pi, pi], altitude is
// clamped to [-pi/2, pi/2] and zoom to the configured range. It changes
// only through the step methods.
type Camera struct {
	azimuth  float64
	altitude float64
	zoom     float64

	cfg Config
}

// NewCamera creates a camera looking along +Z at the configured initial zoom.
func NewCamera(cfg Config) *Camera {
	c := &Camera{cfg: cfg.clone()}
	c.zoom = c.clampZoom(cfg.InitialZoom)
	return c
}

// View returns the current pose.
func (c *Camera) View() View {
	return View{Azimuth: c.azimuth, Altitude: c.altitude, Zoom: c.zoom}
}

// Azimuth returns the horizontal orbit angle in radians.
func (c *Camera) Azimuth() float64 { return c.azimuth }

// Altitude returns the vertical orbit angle in radians.
func (c *Camera) Altitude() float64 { return c.altitude }

// Zoom returns the zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// RotateLeft orbits one step to the left.
func (c *Camera) RotateLeft() {
	c.azimuth = NormalizeAngle(c.azimuth + c.cfg.AngleStep)
}

// RotateRight orbits one step to the right.
func (c *Camera) RotateRight() {
	c.azimuth = NormalizeAngle(c.azimuth - c.cfg.AngleStep)
}

// RotateUp raises the camera one step.
func (c *Camera) RotateUp() {
	c.altitude = clampAltitude(c.altitude + c.cfg.AngleStep)
}

// RotateDown lowers the camera one step.
func (c *Camera) RotateDown() {
	c.altitude = clampAltitude(c.altitude - c.cfg.AngleStep)
}

// ZoomIn enlarges the model one step.
func (c *Camera) ZoomIn() {
	c.zoom = c.clampZoom(c.zoom + c.cfg.ZoomStep)
}

// ZoomOut shrinks the model one step.
func (c *Camera) ZoomOut() {
	c.zoom = c.clampZoom(c.zoom - c.cfg.ZoomStep)
}

// Reset returns to the initial pose.
func (c *Camera) Reset() {
	c.azimuth, c.altitude = 0, 0
	c.zoom = c.clampZoom(c.cfg.InitialZoom)
}

func (c *Camera) clampZoom(z float64) float64 {
	return math.Max(c.cfg.ZoomMin, math.Min(z, c.cfg.ZoomMax))
}

func clampAltitude(a float64) float64 {
	return math.Max(-math.Pi/2, math.Min(a, math.Pi/2))
}

// NormalizeAngle wraps a to (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
