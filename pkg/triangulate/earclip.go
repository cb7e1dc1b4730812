// Package triangulate splits planar polygons into triangles by ear clipping.
package triangulate

import (
	"errors"
	"fmt"

	"github.com/taigrr/asciimesh/pkg/math3d"
)

// Errors returned by EarClip.
var (
	ErrTooFewPoints = errors.New("polygon needs at least 3 points")
	ErrDegenerate   = errors.New("polygon has no area")
	ErrNoEar        = errors.New("no ear found")
)

// degenerateEpsilon is the smallest Newell normal length treated as a real polygon.
const degenerateEpsilon = 1e-10

// EarClip triangulates a planar, simple polygon given in winding order.
// Each returned triple indexes into points and keeps the polygon's winding.
// The first ear in scan order is always clipped, so the output is
// deterministic for a given input ordering. An n-gon yields n-2 triangles.
func EarClip(points []math3d.Vec3) ([][3]int, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("triangulate %d points: %w", len(points), ErrTooFewPoints)
	}

	normal := math3d.PolygonNormal(points)
	if normal.Len() < degenerateEpsilon {
		return nil, fmt.Errorf("triangulate %d points: %w", len(points), ErrDegenerate)
	}

	remaining := make([]int, len(points))
	for i := range remaining {
		remaining[i] = i
	}

	tris := make([][3]int, 0, len(points)-2)
	for len(remaining) > 3 {
		ear := -1
		for i := range remaining {
			if isEar(points, remaining, i, normal) {
				ear = i
				break
			}
		}
		if ear < 0 {
			return nil, fmt.Errorf("triangulate %d points with %d left: %w", len(points), len(remaining), ErrNoEar)
		}

		n := len(remaining)
		prev := remaining[(ear+n-1)%n]
		next := remaining[(ear+1)%n]
		tris = append(tris, [3]int{prev, remaining[ear], next})
		remaining = append(remaining[:ear], remaining[ear+1:]...)
	}

	return append(tris, [3]int{remaining[0], remaining[1], remaining[2]}), nil
}

// isEar reports whether the corner at position i of the working list is
// convex and contains no other remaining vertex.
func isEar(points []math3d.Vec3, remaining []int, i int, normal math3d.Vec3) bool {
	n := len(remaining)
	a := points[remaining[(i+n-1)%n]]
	b := points[remaining[i]]
	c := points[remaining[(i+1)%n]]

	if b.Sub(a).Cross(c.Sub(b)).Dot(normal) <= 0 {
		return false
	}

	for j, idx := range remaining {
		if j == i || j == (i+n-1)%n || j == (i+1)%n {
			continue
		}
		if strictlyInside(points[idx], a, b, c, normal) {
			return false
		}
	}
	return true
}

// strictlyInside reports whether p lies inside triangle abc, excluding its
// edges, with orientation taken from normal.
func strictlyInside(p, a, b, c, normal math3d.Vec3) bool {
	return b.Sub(a).Cross(p.Sub(a)).Dot(normal) > 0 &&
		c.Sub(b).Cross(p.Sub(b)).Dot(normal) > 0 &&
		a.Sub(c).Cross(p.Sub(c)).Dot(normal) > 0
}
