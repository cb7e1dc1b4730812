package render

import (
	"image/color"
	"testing"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/models"
)

func TestPalette(t *testing.T) {
	mats := []models.Material{
		{Name: "red", Diffuse: math3d.V3(1, 0, 0)},
		{Name: "hot", Diffuse: math3d.V3(2, -1, 0.5)},
		{Name: "blue", Diffuse: math3d.V3(0, 0, 1)},
	}

	tests := []struct {
		name string
		idx  models.MaterialIndex
		want color.Color
	}{
		{"first", models.MaterialAt(0), color.RGBA{255, 0, 0, 255}},
		{"clamped", models.MaterialAt(1), color.RGBA{255, 0, 128, 255}},
		{"beyond limit", models.MaterialAt(2), nil},
		{"none", models.NoMaterial(), nil},
		{"out of range", models.MaterialAt(9), nil},
	}

	p := NewPalette(mats, 2)
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Color(tt.idx); got != tt.want {
				t.Errorf("Color(%v) = %v, want %v", tt.idx, got, tt.want)
			}
		})
	}

	if hex := p.Hex(models.MaterialAt(0)); hex != "#ff0000" {
		t.Errorf("Hex = %q, want #ff0000", hex)
	}
	if hex := p.Hex(models.NoMaterial()); hex != "" {
		t.Errorf("Hex(none) = %q, want empty", hex)
	}
}

func TestPaletteDefaultLimit(t *testing.T) {
	mats := make([]models.Material, DefaultMaxColors+10)
	if p := NewPalette(mats, 0); p.Len() != DefaultMaxColors {
		t.Errorf("Len() = %d, want %d", p.Len(), DefaultMaxColors)
	}
}
