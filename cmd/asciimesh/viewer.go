package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/asciimesh/internal/config"
	"github.com/taigrr/asciimesh/internal/logger"
	"github.com/taigrr/asciimesh/pkg/models"
	"github.com/taigrr/asciimesh/pkg/render"
	"go.uber.org/zap"
)

// settleEpsilon is how close a smoothed view must be to its target before
// the viewer stops redrawing.
const settleEpsilon = 1e-3

// viewer owns the interactive session state.
type viewer struct {
	mesh     *models.Mesh
	rc       render.Config
	renderer *render.Renderer
	palette  render.Palette
	camera   *render.Camera
	motion   *render.CameraMotion
	hud      *hud
	showHUD  bool

	buf           *render.Buffer
	width, height int
	dirty         bool
}

func newViewer(mesh *models.Mesh, cfg *config.Config) *viewer {
	rc := cfg.RenderConfig()
	v := &viewer{
		mesh: mesh,
		rc:   rc,
		renderer: render.NewRenderer(rc, render.RenderOptions{
			StaticLight: cfg.Display.StaticLight,
			Colors:      cfg.Display.Colors,
		}),
		camera:  render.NewCamera(rc),
		hud:     newHUD(mesh.Name, mesh.TriangleCount()),
		showHUD: true,
		dirty:   true,
	}
	if cfg.Display.Colors {
		v.palette = render.NewPalette(mesh.Materials, cfg.Display.MaxColors)
	}
	if cfg.Display.Smooth {
		v.motion = render.NewCameraMotion(cfg.Display.FPS)
	}
	return v
}

// resize rebuilds the character buffer for a cols x rows terminal.
func (v *viewer) resize(cols, rows int) error {
	buf, err := render.NewViewportBuffer(cols, rows, v.rc.CharAspectRatio)
	if err != nil {
		return fmt.Errorf("resize to %dx%d: %w", cols, rows, err)
	}
	v.buf, v.width, v.height = buf, cols, rows
	v.dirty = true
	return nil
}

// handle applies a key action. It returns false when the viewer should quit.
func (v *viewer) handle(a action) bool {
	switch a {
	case actQuit:
		return false
	case actToggleHUD:
		v.showHUD = !v.showHUD
		v.dirty = true
	default:
		if applyCamera(v.camera, a) {
			v.dirty = true
		}
	}
	return true
}

// view returns the view to draw this frame.
func (v *viewer) view() render.View {
	target := v.camera.View()
	if v.motion == nil {
		return target
	}
	shown := v.motion.Update(target)
	if !v.motion.Settled(target, settleEpsilon) {
		v.dirty = true
	}
	return shown
}

// frame renders into scr when something changed. It reports whether it drew.
func (v *viewer) frame(scr uv.Screen, now time.Time) bool {
	view := v.view()
	if !v.dirty {
		return false
	}
	v.dirty = false

	v.renderer.Render(v.buf, v.mesh, view)
	area := uv.Rect(0, 0, v.width, v.height)
	v.buf.Draw(scr, area, v.palette)

	v.hud.tick(now)
	if v.showHUD {
		v.hud.draw(scr, area, view, v.renderer.Stats())
	}
	return true
}

// forwardEvents copies terminal events to dst until src closes or done is
// closed.
func forwardEvents(src <-chan uv.Event, dst chan<- uv.Event, done <-chan struct{}) {
	for ev := range src {
		select {
		case dst <- ev:
		case <-done:
			return
		}
	}
}

// runViewer opens the terminal and runs the interactive loop until the user
// quits or ctx is cancelled.
func runViewer(ctx context.Context, mesh *models.Mesh, cfg *config.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	v := newViewer(mesh, cfg)
	if err := v.resize(width, height); err != nil {
		return err
	}

	events := make(chan uv.Event)
	done := make(chan struct{})
	defer close(done)
	go forwardEvents(term.Events(), events, done)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Display.FPS))
	defer ticker.Stop()

	logger.Debug("viewer started", zap.Int("cols", width), zap.Int("rows", height))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				if err := v.resize(ev.Width, ev.Height); err != nil {
					logger.Warn("ignoring resize", zap.Error(err))
				}
			case uv.KeyPressEvent:
				if !v.handle(lookupAction(ev.MatchString)) {
					return nil
				}
			}

		case now := <-ticker.C:
			if v.frame(term, now) {
				if err := term.Display(); err != nil {
					return fmt.Errorf("display: %w", err)
				}
			}
		}
	}
}
