package render

import (
	"math"

	"github.com/taigrr/asciimesh/pkg/math3d"
)

// Light is a single directional light. The direction is normalized at
// construction.
type Light struct {
	dir math3d.Vec3
}

// NewLight creates a light shining along dir. A zero dir falls back to the
// default light.
func NewLight(dir math3d.Vec3) Light {
	if dir.Len() == 0 {
		dir = DefaultConfig().Light
	}
	return Light{dir: dir.Normalize()}
}

// Direction returns the unit light direction.
func (l Light) Direction() math3d.Vec3 {
	return l.dir
}

// Shader maps surface orientation to a ramp character.
type Shader struct {
	ramp []rune
}

// NewShader creates a shader over ramp, darkest first. An empty ramp uses
// DefaultRamp.
func NewShader(ramp []rune) Shader {
	if len(ramp) == 0 {
		ramp = []rune(DefaultRamp)
	}
	return Shader{ramp: append([]rune(nil), ramp...)}
}

// Char returns the ramp character for a face with the given normal lit by
// light. Normals facing along the light map to the end of the ramp.
func (s Shader) Char(normal, light math3d.Vec3) rune {
	return s.ramp[s.Level(normal, light)]
}

// Level returns the ramp index Char would use.
func (s Shader) Level(normal, light math3d.Vec3) int {
	sim := (math3d.CosineSimilarity(normal, light) + 1) * 0.5
	idx := int(math.Round(sim * float64(len(s.ramp)-1)))
	return max(0, min(idx, len(s.ramp)-1))
}

// Ramp returns a copy of the shader's characters.
func (s Shader) Ramp() []rune {
	return append([]rune(nil), s.ramp...)
}
