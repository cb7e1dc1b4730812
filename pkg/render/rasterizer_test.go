package render

import (
	"math"
	"testing"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/models"
)

func newTestBuffer(t *testing.T) *Buffer {
	t.Helper()
	buf, err := NewBuffer(10, 10, 10, 10)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	return buf
}

func flat(z float64, pts ...[2]float64) [3]math3d.Vec3 {
	var p [3]math3d.Vec3
	for i, xy := range pts {
		p[i] = math3d.V3(xy[0], xy[1], z)
	}
	return p
}

func TestDrawProjectionDegenerate(t *testing.T) {
	tests := []struct {
		name string
		p    [3]math3d.Vec3
	}{
		{"single point", flat(0.5, [2]float64{5, 5}, [2]float64{5, 5}, [2]float64{5, 5})},
		{"vertical segment", flat(0.5, [2]float64{5, 1}, [2]float64{5, 4}, [2]float64{5, 9})},
		{"diagonal segment", flat(0.5, [2]float64{0, 0}, [2]float64{5, 5}, [2]float64{10, 10})},
		{"horizontal segment", flat(0.5, [2]float64{1, 3}, [2]float64{4, 3}, [2]float64{9, 3})},
		{"left of viewport", flat(0.5, [2]float64{-9, 0}, [2]float64{-5, 5}, [2]float64{-1, 0})},
		{"right of viewport", flat(0.5, [2]float64{11, 0}, [2]float64{15, 5}, [2]float64{19, 0})},
		{"above viewport", flat(0.5, [2]float64{0, -9}, [2]float64{5, -5}, [2]float64{10, -9})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := newTestBuffer(t)
			buf.DrawProjection(Projection{P: tt.p, Char: '#'}, models.NoMaterial())
			if n := buf.Covered(); n != 0 {
				t.Errorf("covered %d cells, want 0\n%s", n, buf)
			}
		})
	}
}

func TestDrawProjectionFill(t *testing.T) {
	buf := newTestBuffer(t)
	p := Projection{
		P:    flat(0.5, [2]float64{0, 0}, [2]float64{10, 0}, [2]float64{0, 10}),
		Char: '#',
	}
	buf.DrawProjection(p, models.MaterialAt(3))

	inside := [][2]int{{0, 0}, {2, 2}, {0, 8}, {7, 1}}
	for _, c := range inside {
		px := buf.At(c[0], c[1])
		if px.Char != '#' || px.Depth != 0.5 {
			t.Errorf("cell %v = %+v, want filled at depth 0.5", c, px)
		}
		if i, ok := px.Material.Get(); !ok || i != 3 {
			t.Errorf("cell %v material = %v, want 3", c, px.Material)
		}
	}

	outside := [][2]int{{9, 9}, {6, 6}, {9, 2}}
	for _, c := range outside {
		if px := buf.At(c[0], c[1]); px.Char != ' ' || !math.IsInf(px.Depth, 1) {
			t.Errorf("cell %v = %+v, want blank", c, px)
		}
	}
}

func TestDrawProjectionPlaneDepth(t *testing.T) {
	buf := newTestBuffer(t)
	p := Projection{
		P: [3]math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(10, 0, 1),
			math3d.V3(0, 10, 0),
		},
		Char: '#',
	}
	buf.DrawProjection(p, models.NoMaterial())

	// z = 0.1 * x across the plane, sampled at cell centers.
	for _, c := range [][2]int{{0, 0}, {2, 3}, {5, 1}} {
		want := 0.1 * (float64(c[0]) + 0.5)
		if got := buf.At(c[0], c[1]).Depth; math.Abs(got-want) > 1e-9 {
			t.Errorf("cell %v depth = %f, want %f", c, got, want)
		}
	}
}

func TestDrawProjectionOrderIndependent(t *testing.T) {
	near := Projection{
		P:    flat(0.2, [2]float64{0, 0}, [2]float64{8, 1}, [2]float64{2, 9}),
		Char: 'N',
	}
	far := Projection{
		P:    flat(0.8, [2]float64{1, 2}, [2]float64{10, 4}, [2]float64{4, 10}),
		Char: 'F',
	}

	a := newTestBuffer(t)
	a.DrawProjection(near, models.MaterialAt(0))
	a.DrawProjection(far, models.MaterialAt(1))

	b := newTestBuffer(t)
	b.DrawProjection(far, models.MaterialAt(1))
	b.DrawProjection(near, models.MaterialAt(0))

	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("pixel %d differs: %+v vs %+v\n%s\n\n%s", i, a.Pixels[i], b.Pixels[i], a, b)
		}
	}
	if a.At(2, 3).Char != 'N' {
		t.Errorf("overlap cell = %q, want nearer triangle", a.At(2, 3).Char)
	}
}

func TestDrawProjectionTieKeepsFirst(t *testing.T) {
	first := Projection{
		P:    flat(0.5, [2]float64{0, 0}, [2]float64{10, 0}, [2]float64{0, 10}),
		Char: 'A',
	}
	second := first
	second.Char = 'B'

	buf := newTestBuffer(t)
	buf.DrawProjection(first, models.NoMaterial())
	buf.DrawProjection(second, models.NoMaterial())

	for i, p := range buf.Pixels {
		if p.Char == 'B' {
			t.Fatalf("pixel %d overwritten on equal depth", i)
		}
	}
}

func TestSortByX(t *testing.T) {
	a, b, c := sortByX([3]math3d.Vec3{math3d.V3(3, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0)})
	if a.X != 1 || b.X != 2 || c.X != 3 {
		t.Errorf("sortByX = %v %v %v", a, b, c)
	}
}

func BenchmarkDrawProjection(b *testing.B) {
	buf, _ := NewBuffer(200, 60, 6.6, 2)
	p := Projection{
		P:    [3]math3d.Vec3{math3d.V3(0.1, 0.1, 0.3), math3d.V3(6.5, 0.5, 0.6), math3d.V3(2, 1.9, 0.4)},
		Char: '#',
	}

	for b.Loop() {
		buf.Clear()
		buf.DrawProjection(p, models.NoMaterial())
	}
}

func TestDrawProjectionSubCell(t *testing.T) {
	tests := []struct {
		name  string
		p     [3]math3d.Vec3
		cells [][2]int
	}{
		{
			"narrow sliver over a column center",
			flat(0.5, [2]float64{0.4, 0}, [2]float64{0.6, 4}, [2]float64{0.6, 0}),
			[][2]int{{0, 0}, {0, 1}},
		},
		{
			"small triangle around a cell center",
			flat(0.5, [2]float64{2.3, 1.3}, [2]float64{2.7, 1.3}, [2]float64{2.5, 1.8}),
			[][2]int{{2, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewBuffer(4, 4, 4, 4)
			if err != nil {
				t.Fatalf("NewBuffer failed: %v", err)
			}
			buf.DrawProjection(Projection{P: tt.p, Char: '#'}, models.NoMaterial())

			if n := buf.Covered(); n != len(tt.cells) {
				t.Errorf("covered %d cells, want %d\n%s", n, len(tt.cells), buf)
			}
			for _, c := range tt.cells {
				if px := buf.At(c[0], c[1]); px.Char != '#' {
					t.Errorf("cell %v = %q, want '#'", c, px.Char)
				}
			}
		})
	}
}

func TestDrawProjectionMissesCenters(t *testing.T) {
	buf := newTestBuffer(t)
	// Lies between the centers of columns 2 and 3.
	p := flat(0.5, [2]float64{2.6, 2}, [2]float64{3.4, 2}, [2]float64{3, 8})
	buf.DrawProjection(Projection{P: p, Char: '#'}, models.NoMaterial())
	if n := buf.Covered(); n != 0 {
		t.Errorf("covered %d cells, want 0\n%s", n, buf)
	}
}
