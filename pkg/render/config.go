// Package render turns a mesh into a grid of shaded characters: it rotates
// and projects vertices, scan-fills triangles into a depth-tested buffer and
// draws the buffer onto an ultraviolet screen.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/taigrr/asciimesh/pkg/math3d"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid render config")

// DefaultRamp orders characters from darkest to brightest.
const DefaultRamp = " .:-=+*#%@"

// Config holds the rendering constants. It is copied into Camera and
// Renderer at construction and never changed afterwards.
type Config struct {
	Ramp            []rune
	CharAspectRatio float64 // terminal cell height / width
	Light           math3d.Vec3

	AngleStep   float64 // radians per rotate step
	ZoomStep    float64
	ZoomMin     float64
	ZoomMax     float64
	InitialZoom float64
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Ramp:            []rune(DefaultRamp),
		CharAspectRatio: 2.0,
		Light:           math3d.V3(0.75, -1, -0.5),
		AngleStep:       5 * math.Pi / 180,
		ZoomStep:        0.1,
		ZoomMin:         0.1,
		ZoomMax:         5.0,
		InitialZoom:     1.0,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if len(c.Ramp) == 0 {
		return fmt.Errorf("%w: empty ramp", ErrInvalidConfig)
	}
	for i, r := range c.Ramp {
		if runewidth.RuneWidth(r) != 1 {
			return fmt.Errorf("%w: ramp rune %d (%q) is not a single cell wide", ErrInvalidConfig, i, r)
		}
	}
	if c.CharAspectRatio <= 0 {
		return fmt.Errorf("%w: char aspect ratio %v must be positive", ErrInvalidConfig, c.CharAspectRatio)
	}
	if c.Light.Len() == 0 {
		return fmt.Errorf("%w: light direction is zero", ErrInvalidConfig)
	}
	if c.AngleStep <= 0 || c.ZoomStep <= 0 {
		return fmt.Errorf("%w: steps must be positive", ErrInvalidConfig)
	}
	if c.ZoomMin <= 0 || c.ZoomMin > c.ZoomMax {
		return fmt.Errorf("%w: zoom range [%v, %v]", ErrInvalidConfig, c.ZoomMin, c.ZoomMax)
	}
	return nil
}

// clone returns a copy that shares no slices with c.
func (c Config) clone() Config {
	c.Ramp = append([]rune(nil), c.Ramp...)
	return c
}
