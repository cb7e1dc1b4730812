package render

import (
	"math"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/models"
)

// MeshSource is the read-only mesh view the renderer needs.
// This interface allows tests to draw without building a models.Mesh.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) models.Face
}

// Frame holds one frame's transformed vertices.
type Frame struct {
	Rotated []math3d.Vec3 // view space
	Screen  []math3d.Vec3 // logical viewport space, before Offset
	Offset  math3d.Vec3   // centers the projected bounds in the viewport
}

// Transform rotates vertices into view space and projects them onto a
// width x height viewport. The rotation undoes the camera's orbit: yaw by
// -azimuth, then pitch by -altitude.
func Transform(vertices []math3d.Vec3, view View, width, height float64) Frame {
	var f Frame
	f.transform(vertices, view, width, height)
	return f
}

// transform fills f, reusing its slices when large enough.
func (f *Frame) transform(vertices []math3d.Vec3, view View, width, height float64) {
	f.Rotated = resize(f.Rotated, len(vertices))
	f.Screen = resize(f.Screen, len(vertices))
	f.Offset = math3d.Zero3()
	if len(vertices) == 0 {
		return
	}

	lo := math3d.V3(math.Inf(1), math.Inf(1), 0)
	hi := math3d.V3(math.Inf(-1), math.Inf(-1), 0)
	for i, v := range vertices {
		r := v.RotateY(-view.Azimuth).RotateX(-view.Altitude)
		s := math3d.V3(
			(r.X*view.Zoom+1)*0.5*width,
			(1-r.Y*view.Zoom)*0.5*height,
			(r.Z*view.Zoom+1)*0.5,
		)
		f.Rotated[i] = r
		f.Screen[i] = s
		lo.X, lo.Y = math.Min(lo.X, s.X), math.Min(lo.Y, s.Y)
		hi.X, hi.Y = math.Max(hi.X, s.X), math.Max(hi.Y, s.Y)
	}

	f.Offset = math3d.V3(
		(width-(hi.X-lo.X))*0.5-lo.X,
		(height-(hi.Y-lo.Y))*0.5-lo.Y,
		0,
	)
}

func resize(s []math3d.Vec3, n int) []math3d.Vec3 {
	if cap(s) < n {
		return make([]math3d.Vec3, n)
	}
	return s[:n]
}

// RenderOptions selects optional renderer behavior.
type RenderOptions struct {
	// StaticLight shades with object-space normals so the lighting turns
	// with the model instead of staying fixed to the viewer.
	StaticLight bool
	// Colors carries face materials into the buffer.
	Colors bool
}

// Stats counts what the last frame did with each triangle.
type Stats struct {
	Drawn  int
	Culled int
}

// Renderer draws meshes into buffers. It keeps scratch space between
// frames and is not safe for concurrent use.
type Renderer struct {
	cfg    Config
	opts   RenderOptions
	shader Shader
	light  Light

	vertices []math3d.Vec3
	frame    Frame
	stats    Stats
}

// NewRenderer creates a renderer. cfg is copied.
func NewRenderer(cfg Config, opts RenderOptions) *Renderer {
	cfg = cfg.clone()
	return &Renderer{
		cfg:    cfg,
		opts:   opts,
		shader: NewShader(cfg.Ramp),
		light:  NewLight(cfg.Light),
	}
}

// Stats returns the counters of the last Render call.
func (r *Renderer) Stats() Stats { return r.stats }

// Render clears buf and draws every front-facing triangle of mesh as seen
// from view.
func (r *Renderer) Render(buf *Buffer, mesh MeshSource, view View) {
	buf.Clear()
	r.stats = Stats{}

	r.vertices = r.vertices[:0]
	for i := range mesh.VertexCount() {
		r.vertices = append(r.vertices, mesh.GetVertex(i))
	}
	r.frame.transform(r.vertices, view, buf.LogicalWidth, buf.LogicalHeight)

	light := r.light.Direction()
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		a, b, c := face.V[0], face.V[1], face.V[2]

		ra, rb, rc := r.frame.Rotated[a], r.frame.Rotated[b], r.frame.Rotated[c]
		viewNormal := rb.Sub(ra).Cross(rc.Sub(ra)).Normalize()
		if viewNormal.Z >= 0 {
			r.stats.Culled++
			continue
		}

		normal := viewNormal.Negate()
		if r.opts.StaticLight {
			oa, ob, oc := r.vertices[a], r.vertices[b], r.vertices[c]
			normal = ob.Sub(oa).Cross(oc.Sub(oa)).Negate()
		}

		material := models.NoMaterial()
		if r.opts.Colors {
			material = face.Material
		}

		off := r.frame.Offset
		buf.DrawProjection(Projection{
			P: [3]math3d.Vec3{
				r.frame.Screen[a].Add(off),
				r.frame.Screen[b].Add(off),
				r.frame.Screen[c].Add(off),
			},
			Char: r.shader.Char(normal, light),
		}, material)
		r.stats.Drawn++
	}
}
