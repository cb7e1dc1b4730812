// Package config handles asciimesh configuration loading and management.
package config

import (
	"fmt"
	"math"

	"github.com/taigrr/asciimesh/internal/logger"
	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/render"
)

// Config holds all viewer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	View    ViewConfig    `yaml:"view"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds shading and projection settings.
type RenderConfig struct {
	Ramp            string     `yaml:"ramp"`              // darkest to brightest
	CharAspectRatio float64    `yaml:"char_aspect_ratio"` // cell height / width
	Light           [3]float64 `yaml:"light"`
}

// ViewConfig holds camera step sizes and limits.
type ViewConfig struct {
	AngleStepDegrees float64 `yaml:"angle_step_degrees"`
	ZoomStep         float64 `yaml:"zoom_step"`
	ZoomMin          float64 `yaml:"zoom_min"`
	ZoomMax          float64 `yaml:"zoom_max"`
	InitialZoom      float64 `yaml:"initial_zoom"`
}

// DisplayConfig holds terminal output settings.
type DisplayConfig struct {
	FPS         int  `yaml:"fps"`
	MaxColors   int  `yaml:"max_colors"`
	Colors      bool `yaml:"colors"`
	StaticLight bool `yaml:"static_light"`
	Smooth      bool `yaml:"smooth"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock rendering constants.
func Default() *Config {
	rc := render.DefaultConfig()
	return &Config{
		Render: RenderConfig{
			Ramp:            string(rc.Ramp),
			CharAspectRatio: rc.CharAspectRatio,
			Light:           [3]float64{rc.Light.X, rc.Light.Y, rc.Light.Z},
		},
		View: ViewConfig{
			AngleStepDegrees: 5,
			ZoomStep:         rc.ZoomStep,
			ZoomMin:          rc.ZoomMin,
			ZoomMax:          rc.ZoomMax,
			InitialZoom:      rc.InitialZoom,
		},
		Display: DisplayConfig{
			FPS:       30,
			MaxColors: render.DefaultMaxColors,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// RenderConfig converts the settings into the renderer's configuration.
func (c *Config) RenderConfig() render.Config {
	return render.Config{
		Ramp:            []rune(c.Render.Ramp),
		CharAspectRatio: c.Render.CharAspectRatio,
		Light:           math3d.V3(c.Render.Light[0], c.Render.Light[1], c.Render.Light[2]),
		AngleStep:       c.View.AngleStepDegrees * math.Pi / 180,
		ZoomStep:        c.View.ZoomStep,
		ZoomMin:         c.View.ZoomMin,
		ZoomMax:         c.View.ZoomMax,
		InitialZoom:     c.View.InitialZoom,
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if err := c.RenderConfig().Validate(); err != nil {
		return err
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("display.fps must be positive, got %d", c.Display.FPS)
	}
	if c.Display.MaxColors < 0 {
		return fmt.Errorf("display.max_colors must not be negative, got %d", c.Display.MaxColors)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
