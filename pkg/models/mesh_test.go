package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/asciimesh/pkg/math3d"
)

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		name    string
		idx, n  int
		want    int
		wantErr bool
	}{
		{"first", 1, 4, 0, false},
		{"last", 4, 4, 3, false},
		{"relative last", -1, 4, 3, false},
		{"relative first", -4, 4, 0, false},
		{"zero", 0, 4, 0, true},
		{"past end", 5, 4, 0, true},
		{"relative past start", -5, 4, 0, true},
		{"no vertices", 1, 0, 0, true},
		{"min int", math.MinInt, 4, 0, true},
		{"max int", math.MaxInt, 4, 0, true},
		{"min int plus one", math.MinInt + 1, 4, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveIndex(tt.idx, tt.n)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIndex) {
					t.Errorf("ResolveIndex(%d, %d) error = %v, want ErrInvalidIndex", tt.idx, tt.n, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ResolveIndex(%d, %d) = %d, %v; want %d", tt.idx, tt.n, got, err, tt.want)
			}
		})
	}
}

func TestResolveIndexRoundTrip(t *testing.T) {
	const n = 7
	for i := range n {
		if got, err := ResolveIndex(i+1, n); err != nil || got != i {
			t.Errorf("1-based %d resolved to %d, %v", i+1, got, err)
		}
		if got, err := ResolveIndex(i-n, n); err != nil || got != i {
			t.Errorf("relative %d resolved to %d, %v", i-n, got, err)
		}
	}
}

func TestMaterialIndex(t *testing.T) {
	var zero MaterialIndex
	if _, ok := zero.Get(); ok {
		t.Error("zero MaterialIndex should be empty")
	}
	if i, ok := MaterialAt(2).Get(); !ok || i != 2 {
		t.Errorf("MaterialAt(2).Get() = %d, %v", i, ok)
	}
	if zero != NoMaterial() {
		t.Error("NoMaterial should equal the zero value")
	}
}

func TestFindMaterial(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", Diffuse: math3d.V3(1, 0, 0)},
		{Name: "green", Diffuse: math3d.V3(0, 1, 0)},
		{Name: "red", Diffuse: math3d.V3(0.5, 0, 0)},
	}

	idx, ok := mesh.FindMaterial("red")
	if i, _ := idx.Get(); !ok || i != 0 {
		t.Errorf("FindMaterial(red) = %v, %v; want first match", idx, ok)
	}
	if _, ok := mesh.FindMaterial("blue"); ok {
		t.Error("FindMaterial(blue) should not match")
	}
	if mat := mesh.GetMaterial(MaterialAt(1)); mat == nil || mat.Name != "green" {
		t.Errorf("GetMaterial(1) = %v", mat)
	}
	if mat := mesh.GetMaterial(NoMaterial()); mat != nil {
		t.Errorf("GetMaterial(none) = %v, want nil", mat)
	}
}

func TestValidate(t *testing.T) {
	tri := []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}

	tests := []struct {
		name string
		mesh *Mesh
		want error
	}{
		{"valid", &Mesh{Vertices: tri, Faces: []Face{{V: [3]int{0, 1, 2}}}}, nil},
		{"no vertices", &Mesh{Faces: []Face{{V: [3]int{0, 1, 2}}}}, ErrEmptyMesh},
		{"no faces", &Mesh{Vertices: tri}, ErrEmptyMesh},
		{"vertex out of range", &Mesh{Vertices: tri, Faces: []Face{{V: [3]int{0, 1, 3}}}}, ErrIndexOutOfRange},
		{"negative vertex", &Mesh{Vertices: tri, Faces: []Face{{V: [3]int{-1, 1, 2}}}}, ErrIndexOutOfRange},
		{
			"material out of range",
			&Mesh{Vertices: tri, Faces: []Face{{V: [3]int{0, 1, 2}, Material: MaterialAt(0)}}},
			ErrIndexOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	mesh := NewMesh("box")
	mesh.Vertices = []math3d.Vec3{
		math3d.V3(10, 20, 30),
		math3d.V3(14, 21, 30.5),
	}
	mesh.Normalize()

	size := mesh.Size()
	if math.Abs(size.X-1) > 1e-9 || math.Abs(size.Y-0.25) > 1e-9 || math.Abs(size.Z-0.125) > 1e-9 {
		t.Errorf("normalized size = %v, want (1, 0.25, 0.125)", size)
	}
	if c := mesh.Center(); c.Len() > 1e-9 {
		t.Errorf("normalized center = %v, want origin", c)
	}
}
