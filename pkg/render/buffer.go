package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/asciimesh/pkg/models"
)

// ErrEmptyBuffer is returned when a buffer would have no cells.
var ErrEmptyBuffer = errors.New("buffer has no cells")

// viewportHeight is the logical height of every viewport.
const viewportHeight = 2.0

// Pixel is one character cell of the buffer.
type Pixel struct {
	Depth    float64
	Char     rune
	Material models.MaterialIndex
}

// Buffer is a depth-tested grid of character cells. Cells are addressed in
// a logical coordinate space of LogicalWidth x LogicalHeight; each cell
// covers DX x DY of it.
type Buffer struct {
	Cols, Rows int

	LogicalWidth  float64
	LogicalHeight float64
	DX, DY        float64

	Pixels []Pixel // Row-major
}

// NewBuffer creates a cleared cols x rows buffer over a logical viewport.
func NewBuffer(cols, rows int, logicalWidth, logicalHeight float64) (*Buffer, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("new buffer %dx%d: %w", cols, rows, ErrEmptyBuffer)
	}
	if logicalWidth <= 0 || logicalHeight <= 0 {
		return nil, fmt.Errorf("new buffer with viewport %vx%v: %w", logicalWidth, logicalHeight, ErrEmptyBuffer)
	}

	b := &Buffer{
		Cols:          cols,
		Rows:          rows,
		LogicalWidth:  logicalWidth,
		LogicalHeight: logicalHeight,
		DX:            logicalWidth / float64(cols),
		DY:            logicalHeight / float64(rows),
		Pixels:        make([]Pixel, cols*rows),
	}
	b.Clear()
	return b, nil
}

// ViewportSize returns the logical viewport for a character grid. The
// height is fixed and the width compensates for non-square cells so that
// the model keeps its proportions.
func ViewportSize(cols, rows int, charAspectRatio float64) (width, height float64) {
	if rows <= 0 || charAspectRatio <= 0 {
		return 0, 0
	}
	return viewportHeight * float64(cols) / (float64(rows) * charAspectRatio), viewportHeight
}

// NewViewportBuffer creates a buffer sized by ViewportSize.
func NewViewportBuffer(cols, rows int, charAspectRatio float64) (*Buffer, error) {
	w, h := ViewportSize(cols, rows, charAspectRatio)
	return NewBuffer(cols, rows, w, h)
}

// Clear resets every cell to a blank, infinitely far pixel.
func (b *Buffer) Clear() {
	n := len(b.Pixels)
	if n == 0 {
		return
	}
	b.Pixels[0] = Pixel{Depth: math.Inf(1), Char: ' '}
	for i := 1; i < n; i *= 2 {
		copy(b.Pixels[i:], b.Pixels[:i])
	}
}

// At returns the pixel at column x, row y.
// Returns a blank pixel if out of bounds.
func (b *Buffer) At(x, y int) Pixel {
	if x < 0 || x >= b.Cols || y < 0 || y >= b.Rows {
		return Pixel{Depth: math.Inf(1), Char: ' '}
	}
	return b.Pixels[y*b.Cols+x]
}

// ColumnSpan returns the columns from the one containing x = lo to the one
// containing x = hi, clamped to the grid. ok is false when the range is
// empty or lies wholly outside the grid.
func (b *Buffer) ColumnSpan(lo, hi float64) (first, last int, ok bool) {
	return cellSpan(lo/b.DX, hi/b.DX, b.Cols)
}

// RowSpan is ColumnSpan for rows.
func (b *Buffer) RowSpan(lo, hi float64) (first, last int, ok bool) {
	return cellSpan(lo/b.DY, hi/b.DY, b.Rows)
}

// cellSpan works in cell units. The range is tested before clamping so a
// span that starts past the last cell stays empty.
func cellSpan(lo, hi float64, n int) (int, int, bool) {
	lo, hi = math.Floor(lo), math.Floor(hi)
	if !(lo <= hi) || hi < 0 || lo >= float64(n) {
		return 0, 0, false
	}
	return clampIndex(lo, n), clampIndex(hi, n), true
}

func clampIndex(f float64, n int) int {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= float64(n-1) {
		return n - 1
	}
	return int(f)
}

// Covered returns the number of cells written since the last Clear.
func (b *Buffer) Covered() int {
	n := 0
	for _, p := range b.Pixels {
		if !math.IsInf(p.Depth, 1) {
			n++
		}
	}
	return n
}

// String returns the characters of the buffer, one line per row.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow((b.Cols + 1) * b.Rows)
	for y := range b.Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, p := range b.Pixels[y*b.Cols : (y+1)*b.Cols] {
			sb.WriteRune(p.Char)
		}
	}
	return sb.String()
}
