package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/asciimesh/pkg/models"
)

// DefaultMaxColors is the number of material colors a palette registers
// when no limit is configured.
const DefaultMaxColors = 256

// Palette maps material indices to terminal colors. Only the first
// maxColors materials get a color; the rest draw with the default
// foreground.
type Palette struct {
	colors []color.Color
}

// NewPalette registers a color for each material's diffuse value, clamped
// to the displayable range.
func NewPalette(materials []models.Material, maxColors int) Palette {
	if maxColors <= 0 {
		maxColors = DefaultMaxColors
	}
	n := min(len(materials), maxColors)

	p := Palette{colors: make([]color.Color, n)}
	for i, m := range materials[:n] {
		c := colorful.Color{R: m.Diffuse.X, G: m.Diffuse.Y, B: m.Diffuse.Z}.Clamped()
		r, g, b := c.RGB255()
		p.colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// Len returns the number of registered colors.
func (p Palette) Len() int {
	return len(p.colors)
}

// Color returns the color for idx, or nil when idx is empty or has no slot.
func (p Palette) Color(idx models.MaterialIndex) color.Color {
	i, ok := idx.Get()
	if !ok || i < 0 || i >= len(p.colors) {
		return nil
	}
	return p.colors[i]
}

// Hex returns the color for idx as #rrggbb, or "" when it has none.
func (p Palette) Hex(idx models.MaterialIndex) string {
	c := p.Color(idx)
	if c == nil {
		return ""
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
