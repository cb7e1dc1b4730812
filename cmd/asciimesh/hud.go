package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
	"github.com/taigrr/asciimesh/pkg/render"
)

var (
	hudFg = color.RGBA{235, 235, 235, 255}
	hudBg = color.RGBA{30, 30, 40, 255}
)

const hudHelp = " arrows/hjkl orbit  +/- zoom  r reset  tab hud  q quit "

// hud renders an overlay with model info and the camera state.
type hud struct {
	filename  string
	triangles int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(filename string, triangles int) *hud {
	return &hud{
		filename:  filename,
		triangles: triangles,
		fpsTime:   time.Now(),
	}
}

// tick counts a frame. Call once per rendered frame.
func (h *hud) tick(now time.Time) {
	h.fpsFrames++
	if elapsed := now.Sub(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// status formats the top line.
func (h *hud) status(view render.View, stats render.Stats) string {
	return fmt.Sprintf(" %.0f FPS  zoom %.2f  az %+.0f°  alt %+.0f°  %d/%d tris ",
		h.fps,
		view.Zoom,
		view.Azimuth*180/math.Pi,
		view.Altitude*180/math.Pi,
		stats.Drawn, h.triangles,
	)
}

// draw writes the status line at the top of area with the file name
// right-aligned, and the key help on the bottom row.
func (h *hud) draw(scr uv.Screen, area uv.Rectangle, view render.View, stats render.Stats) {
	top, bottom := area.Min.Y, area.Max.Y-1

	used := render.DrawText(scr, area.Min.X, top, h.status(view, stats), hudFg, hudBg)
	title := " " + h.filename + " "
	if x := area.Max.X - runewidth.StringWidth(title); x > area.Min.X+used {
		render.DrawText(scr, x, top, title, hudFg, hudBg)
	}

	if bottom > top {
		render.DrawText(scr, area.Min.X, bottom, hudHelp, hudFg, hudBg)
	}
}
