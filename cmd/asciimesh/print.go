package main

import (
	"fmt"
	"io"

	"github.com/taigrr/asciimesh/internal/config"
	"github.com/taigrr/asciimesh/pkg/models"
	"github.com/taigrr/asciimesh/pkg/render"
)

// printFrame renders mesh once from the initial camera and writes the
// characters to w.
func printFrame(w io.Writer, mesh *models.Mesh, cfg *config.Config, cols, rows int) error {
	rc := cfg.RenderConfig()
	buf, err := render.NewViewportBuffer(cols, rows, rc.CharAspectRatio)
	if err != nil {
		return err
	}

	r := render.NewRenderer(rc, render.RenderOptions{StaticLight: cfg.Display.StaticLight})
	r.Render(buf, mesh, render.NewCamera(rc).View())

	_, err = fmt.Fprintln(w, buf.String())
	return err
}
