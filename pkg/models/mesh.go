// Package models provides mesh loading and representation for asciimesh.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/asciimesh/pkg/math3d"
)

// Errors returned by loaders and Mesh.Validate.
var (
	ErrEmptyMesh         = errors.New("mesh is empty")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidIndex      = errors.New("invalid relative index")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// normalizeMinExtent keeps Normalize finite for flat or single-point meshes.
const normalizeMinExtent = 1e-6

// Mesh is a triangle mesh with optional per-face materials.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle referencing three entries of Mesh.Vertices.
type Face struct {
	V        [3]int
	Material MaterialIndex
}

// Material is a named diffuse color. Components are not clamped.
type Material struct {
	Name    string
	Diffuse math3d.Vec3
}

// DefaultDiffuse is the diffuse color of a material that declares none.
var DefaultDiffuse = math3d.V3(1, 1, 1)

// MaterialIndex optionally refers to an entry of Mesh.Materials.
// The zero value refers to no material.
type MaterialIndex struct {
	index int
	valid bool
}

// MaterialAt returns a MaterialIndex referring to material i.
func MaterialAt(i int) MaterialIndex {
	return MaterialIndex{index: i, valid: true}
}

// NoMaterial returns the empty MaterialIndex.
func NoMaterial() MaterialIndex {
	return MaterialIndex{}
}

// Get returns the referenced index and whether one is set.
func (m MaterialIndex) Get() (int, bool) {
	return m.index, m.valid
}

func (m MaterialIndex) String() string {
	if !m.valid {
		return "none"
	}
	return fmt.Sprintf("%d", m.index)
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position of vertex i.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns face i.
func (m *Mesh) GetFace(i int) Face {
	return m.Faces[i]
}

// GetMaterial returns the material idx refers to, or nil when idx is empty
// or out of range.
func (m *Mesh) GetMaterial(idx MaterialIndex) *Material {
	i, ok := idx.Get()
	if !ok || i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// FindMaterial returns the first material named name.
func (m *Mesh) FindMaterial(name string) (MaterialIndex, bool) {
	for i, mat := range m.Materials {
		if mat.Name == name {
			return MaterialAt(i), true
		}
	}
	return NoMaterial(), false
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales its largest extent to 1.
func (m *Mesh) Normalize() {
	if len(m.Vertices) == 0 {
		return
	}
	m.CalculateBounds()
	m.Transform(math3d.FitUnitCube(m.BoundsMin, m.BoundsMax, normalizeMinExtent))
}

// Validate checks that the mesh is renderable: it has vertices and faces,
// and every face refers to existing vertices and materials.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("no vertices: %w", ErrEmptyMesh)
	}
	if len(m.Faces) == 0 {
		return fmt.Errorf("no faces: %w", ErrEmptyMesh)
	}
	for fi, f := range m.Faces {
		for _, vi := range f.V {
			if vi < 0 || vi >= len(m.Vertices) {
				return fmt.Errorf("face %d vertex %d of %d: %w", fi, vi, len(m.Vertices), ErrIndexOutOfRange)
			}
		}
		if mi, ok := f.Material.Get(); ok && (mi < 0 || mi >= len(m.Materials)) {
			return fmt.Errorf("face %d material %d of %d: %w", fi, mi, len(m.Materials), ErrIndexOutOfRange)
		}
	}
	return nil
}

// ResolveIndex converts a 1-based or negative (end-relative) face index into
// a 0-based index into a list of n vertices.
func ResolveIndex(idx, n int) (int, error) {
	if idx == 0 || idx > n || idx < -n {
		return 0, fmt.Errorf("index %d with %d vertices: %w", idx, n, ErrInvalidIndex)
	}
	if idx < 0 {
		return n + idx, nil
	}
	return idx - 1, nil
}
