package render

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/taigrr/asciimesh/pkg/math3d"
	"github.com/taigrr/asciimesh/pkg/models"
)

func TestNewBufferRejectsEmpty(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		w, h       float64
	}{
		{"zero cols", 0, 10, 1, 1},
		{"zero rows", 10, 0, 1, 1},
		{"negative", -1, 5, 1, 1},
		{"zero viewport", 10, 10, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBuffer(tt.cols, tt.rows, tt.w, tt.h); !errors.Is(err, ErrEmptyBuffer) {
				t.Errorf("NewBuffer error = %v, want ErrEmptyBuffer", err)
			}
		})
	}
}

func TestViewportSize(t *testing.T) {
	w, h := ViewportSize(80, 24, 2.0)
	if h != 2 {
		t.Errorf("height = %f, want 2", h)
	}
	if want := 2.0 * 80 / (24 * 2.0); math.Abs(w-want) > 1e-12 {
		t.Errorf("width = %f, want %f", w, want)
	}

	buf, err := NewViewportBuffer(80, 24, 2.0)
	if err != nil {
		t.Fatalf("NewViewportBuffer failed: %v", err)
	}
	// Cells are twice as tall as wide, so the logical cell is too.
	if ratio := buf.DY / buf.DX; math.Abs(ratio-2) > 1e-12 {
		t.Errorf("DY/DX = %f, want 2", ratio)
	}
}

func TestBufferSpan(t *testing.T) {
	buf, _ := NewBuffer(4, 2, 4, 2)

	tests := []struct {
		name        string
		lo, hi      float64
		first, last int
		ok          bool
	}{
		{"inside", 0.5, 2.5, 0, 2, true},
		{"within one cell", 0.9, 0.1, 0, 0, true},
		{"between centers", 1.2, 0.8, 0, 0, false},
		{"clamped left", -3, 1.5, 0, 1, true},
		{"clamped right", 2.5, 100, 2, 3, true},
		{"past last cell", 4, 3.5, 0, 0, false},
		{"before first cell", 0.4, -0.4, 0, 0, false},
		{"NaN", math.NaN(), 1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, ok := buf.ColumnSpan(tt.lo, tt.hi)
			if ok != tt.ok || (ok && (first != tt.first || last != tt.last)) {
				t.Errorf("ColumnSpan(%v, %v) = %d, %d, %v; want %d, %d, %v",
					tt.lo, tt.hi, first, last, ok, tt.first, tt.last, tt.ok)
			}
		})
	}

	if first, last, ok := buf.RowSpan(0.5, 1.5); !ok || first != 0 || last != 1 {
		t.Errorf("RowSpan(0.5, 1.5) = %d, %d, %v; want 0, 1, true", first, last, ok)
	}
}

func TestBufferClear(t *testing.T) {
	buf, _ := NewBuffer(3, 2, 3, 2)
	buf.DrawProjection(Projection{
		P:    [3]math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(3, 0, 0), math3d.V3(0, 2, 0)},
		Char: '@',
	}, models.MaterialAt(0))
	if buf.Covered() == 0 {
		t.Fatal("expected some coverage before Clear")
	}

	buf.Clear()
	for i, p := range buf.Pixels {
		if p.Char != ' ' || !math.IsInf(p.Depth, 1) {
			t.Errorf("pixel %d = %+v after Clear", i, p)
		}
		if _, ok := p.Material.Get(); ok {
			t.Errorf("pixel %d kept material after Clear", i)
		}
	}
}

func TestBufferString(t *testing.T) {
	buf, _ := NewBuffer(3, 2, 3, 2)
	buf.Pixels[1].Char = 'x'
	buf.Pixels[5].Char = 'y'

	want := strings.Join([]string{" x ", "  y"}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
