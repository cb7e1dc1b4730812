package render

import (
	"errors"
	"testing"

	"github.com/taigrr/asciimesh/pkg/math3d"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty ramp", func(c *Config) { c.Ramp = nil }},
		{"wide rune", func(c *Config) { c.Ramp = []rune(" .中") }},
		{"control rune", func(c *Config) { c.Ramp = []rune(" \t#") }},
		{"zero aspect", func(c *Config) { c.CharAspectRatio = 0 }},
		{"zero light", func(c *Config) { c.Light = math3d.Zero3() }},
		{"zero angle step", func(c *Config) { c.AngleStep = 0 }},
		{"inverted zoom", func(c *Config) { c.ZoomMin, c.ZoomMax = 3, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigCopiedIntoCamera(t *testing.T) {
	cfg := DefaultConfig()
	cam := NewCamera(cfg)
	cfg.ZoomMax = 100

	for range 100 {
		cam.ZoomIn()
	}
	if cam.Zoom() != DefaultConfig().ZoomMax {
		t.Errorf("camera saw a config change made after construction: zoom %f", cam.Zoom())
	}
}
