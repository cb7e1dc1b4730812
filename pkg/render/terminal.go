package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
)

// Draw writes the buffer onto scr within area, one cell per pixel. Pixels
// with a material get its palette color as foreground.
func (b *Buffer) Draw(scr uv.Screen, area uv.Rectangle, pal Palette) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		y := row - area.Min.Y
		if y >= b.Rows {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= b.Cols {
				break
			}
			p := b.Pixels[y*b.Cols+x]
			scr.SetCell(col, row, &uv.Cell{
				Content: string(p.Char),
				Width:   1,
				Style:   uv.Style{Fg: pal.Color(p.Material)},
			})
		}
	}
}

// DrawText writes s onto scr starting at (x, y), clipped to the screen
// bounds. It returns the number of columns used.
func DrawText(scr uv.Screen, x, y int, s string, fg, bg color.Color) int {
	bounds := scr.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return 0
	}
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > bounds.Max.X {
			break
		}
		if x >= bounds.Min.X {
			scr.SetCell(x, y, &uv.Cell{
				Content: string(r),
				Width:   w,
				Style:   uv.Style{Fg: fg, Bg: bg},
			})
		}
		x += w
	}
	return x - start
}
