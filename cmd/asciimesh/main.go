// asciimesh - shaded ASCII mesh viewer.
// Renders OBJ and GLB models as characters in your terminal.
//
// Controls:
//
//	Left/H/A    - Orbit left
//	Right/L/D   - Orbit right
//	Up/K/W      - Orbit up
//	Down/J/S    - Orbit down
//	+/=/I       - Zoom in
//	-/O         - Zoom out
//	R           - Reset view
//	Tab         - Toggle HUD overlay
//	Q/Esc       - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/asciimesh/internal/config"
	"github.com/taigrr/asciimesh/internal/logger"
	"github.com/taigrr/asciimesh/pkg/models"
	"github.com/taigrr/asciimesh/pkg/render"
	"go.uber.org/zap"
)

var version = "dev"

// options holds the command-line flags. Flags the user did not set leave
// the loaded configuration untouched.
type options struct {
	configPath  string
	color       bool
	staticLight bool
	smooth      bool
	fps         int
	logLevel    string
	logFile     string
	dumpConfig  bool
	print       bool
	width       int
	height      int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "asciimesh [flags] <model.obj|model.glb>",
		Short: "View 3D meshes as shaded ASCII art",
		Long: "asciimesh renders OBJ and GLB models in the terminal with an orbiting camera.\n" +
			"Faces are shaded by their angle to a single directional light.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &opts)
			if err != nil {
				return err
			}

			if opts.dumpConfig {
				return cfg.WriteYAML(cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return errors.New("missing model path")
			}

			// The console is only safe when the terminal stays in normal mode.
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, opts.print); err != nil {
				return err
			}
			defer logger.Sync()

			mesh, err := loadMesh(args[0], cfg)
			if err != nil {
				return err
			}

			if opts.print {
				return printFrame(cmd.OutOrStdout(), mesh, cfg, opts.width, opts.height)
			}
			return runViewer(cmd.Context(), mesh, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	f.BoolVarP(&opts.color, "color", "c", false, "color faces by material")
	f.BoolVarP(&opts.staticLight, "light", "l", false, "keep the light fixed to the model")
	f.BoolVar(&opts.smooth, "smooth", false, "ease camera moves")
	f.IntVar(&opts.fps, "fps", 0, "target frames per second")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.BoolVar(&opts.dumpConfig, "dump-config", false, "print the effective configuration and exit")
	f.BoolVar(&opts.print, "print", false, "print one frame to stdout instead of opening the viewer")
	f.IntVar(&opts.width, "width", 80, "frame width in columns for --print")
	f.IntVar(&opts.height, "height", 24, "frame height in rows for --print")

	return cmd
}

// loadConfig loads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("color") {
		cfg.Display.Colors = opts.color
	}
	if f.Changed("light") {
		cfg.Display.StaticLight = opts.staticLight
	}
	if f.Changed("smooth") {
		cfg.Display.Smooth = opts.smooth
	}
	if f.Changed("fps") {
		cfg.Display.FPS = opts.fps
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if f.Changed("log-file") {
		cfg.Logging.LogFile = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadMesh loads and normalizes the model at path.
func loadMesh(path string, cfg *config.Config) (*models.Mesh, error) {
	mesh, err := models.Load(path, cfg.Display.Colors, logger.Log)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	size, center := mesh.Size(), mesh.Center()
	logger.Info("loaded model",
		zap.String("file", mesh.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("materials", mesh.MaterialCount()),
		zap.String("size", fmt.Sprintf("%.3g x %.3g x %.3g", size.X, size.Y, size.Z)),
		zap.String("center", fmt.Sprintf("(%.3g, %.3g, %.3g)", center.X, center.Y, center.Z)),
	)
	mesh.Normalize()

	if cfg.Display.Colors {
		pal := render.NewPalette(mesh.Materials, cfg.Display.MaxColors)
		for i := range pal.Len() {
			idx := models.MaterialAt(i)
			logger.Debug("material color",
				zap.String("name", mesh.GetMaterial(idx).Name),
				zap.String("hex", pal.Hex(idx)),
			)
		}
	}
	return mesh, nil
}
