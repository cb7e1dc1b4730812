package render

import (
	"math"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/models"
)

// planeEpsilon guards divisions by near-zero slopes and normal components.
const planeEpsilon = 1e-7

// Projection is a screen-space triangle ready for scan filling.
// X and Y are logical viewport coordinates; Z is depth, smaller is nearer.
type Projection struct {
	P    [3]math3d.Vec3
	Char rune
}

// DrawProjection scan-fills p column by column. Every cell whose center
// falls inside the triangle gets a depth from the triangle's plane and is
// overwritten only if that depth is strictly nearer than what the cell
// already holds.
func (b *Buffer) DrawProjection(p Projection, material models.MaterialIndex) {
	p1, p2, p3 := sortByX(p.P)

	xStart := p1.X + b.DX/2
	xEnd := p3.X - b.DX/2
	if xEnd < 0 || xStart > b.LogicalWidth {
		return
	}
	colStart, colEnd, ok := b.ColumnSpan(xStart, xEnd)
	if !ok {
		return
	}

	normal := p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()

	for px := colStart; px <= colEnd; px++ {
		cx := (float64(px) + 0.5) * b.DX

		ya := upperEdgeY(cx, p1, p2, p3)
		yb := longEdgeY(cx, p1, p3)
		yMin, yMax := math.Min(ya, yb), math.Max(ya, yb)
		if yMax < 0 || yMin > b.LogicalHeight {
			continue
		}

		rowStart, rowEnd, ok := b.RowSpan(yMin+b.DY/2, yMax-b.DY/2)
		if !ok {
			continue
		}
		for py := rowStart; py <= rowEnd; py++ {
			cy := (float64(py) + 0.5) * b.DY
			depth := planeDepth(cx, cy, p1, normal)

			pix := &b.Pixels[py*b.Cols+px]
			if depth < pix.Depth {
				pix.Depth = depth
				pix.Char = p.Char
				pix.Material = material
			}
		}
	}
}

// sortByX orders the points by ascending x.
func sortByX(p [3]math3d.Vec3) (a, b, c math3d.Vec3) {
	a, b, c = p[0], p[1], p[2]
	if a.X > b.X {
		a, b = b, a
	}
	if b.X > c.X {
		b, c = c, b
	}
	if a.X > b.X {
		a, b = b, a
	}
	return a, b, c
}

// upperEdgeY returns y at x along the two short edges p1-p2-p3.
func upperEdgeY(x float64, p1, p2, p3 math3d.Vec3) float64 {
	switch {
	case x <= p1.X:
		return p1.Y
	case x >= p3.X:
		return p3.Y
	case x <= p2.X:
		return edgeY(x, p1, p2)
	default:
		return edgeY(x, p2, p3)
	}
}

// longEdgeY returns y at x along the long edge p1-p3.
func longEdgeY(x float64, p1, p3 math3d.Vec3) float64 {
	return edgeY(x, p1, p3)
}

// edgeY interpolates y at x along a-b. Vertical edges yield a.Y.
func edgeY(x float64, a, b math3d.Vec3) float64 {
	den := b.X - a.X
	if math.Abs(den) < planeEpsilon {
		return a.Y
	}
	return math3d.Lerp(a.Y, b.Y, (x-a.X)/den)
}

// planeDepth solves the triangle's plane for z at (x, y). Planes seen
// edge-on fall back to the anchor's depth.
func planeDepth(x, y float64, anchor, normal math3d.Vec3) float64 {
	if math.Abs(normal.Z) < planeEpsilon {
		return anchor.Z
	}
	return anchor.Z - (normal.X*(x-anchor.X)+normal.Y*(y-anchor.Y))/normal.Z
}
