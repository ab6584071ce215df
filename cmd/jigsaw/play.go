package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/jigsaw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// playOptions holds the flags of the play command.
type playOptions struct {
	preset        string
	script        string
	cols, rows    int
	snap          float64
	ghost         float64
	width, height int
	showFPS       bool
	debug         bool
	screenshotDir string
}

func newPlayCmd() *cobra.Command {
	return playCommand(&playOptions{})
}

// playCommand builds the play command bound to opts.
func playCommand(opts *playOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [image]",
		Short: "Open a puzzle window for an image path or URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.preset, "preset", "", "YAML preset with image, cols, rows, snap and ghost")
	f.StringVar(&opts.script, "script", "", "JSON test script to replay against the board")
	f.IntVar(&opts.cols, "cols", 4, "Number of columns (at least 2)")
	f.IntVar(&opts.rows, "rows", 3, "Number of rows (at least 2)")
	f.Float64Var(&opts.snap, "snap", jigsaw.DefaultSnapDistance, "Snap distance in pixels")
	f.Float64Var(&opts.ghost, "ghost", 0.35, "Ghost image opacity in [0,1]")
	f.IntVar(&opts.width, "width", 960, "Window width")
	f.IntVar(&opts.height, "height", 720, "Window height")
	f.BoolVar(&opts.showFPS, "fps", false, "Show FPS in the HUD")
	f.BoolVar(&opts.debug, "debug", false, "Log per-render timing")
	f.StringVar(&opts.screenshotDir, "screenshots", "screenshots", "Directory for script screenshots")
	return cmd
}

func runPlay(cmd *cobra.Command, opts *playOptions, args []string) error {
	cfg, err := buildConfig(cmd, opts, args)
	if err != nil {
		return err
	}
	cfg.Logger = logger
	cfg.OnComplete = func() { logger.Info("Puzzle solved") }
	cfg.OnError = func(message string) { logger.Error("Puzzle unavailable", zap.String("message", message)) }

	board, err := jigsaw.NewBoard(jigsaw.NewImageSurface(opts.width, opts.height), cfg)
	if err != nil {
		return err
	}
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := jigsaw.LoadTestScript(data)
		if err != nil {
			return err
		}
		board.SetTestRunner(runner)
	}

	logger.Info("Starting puzzle",
		zap.String("image", cfg.ImageURL),
		zap.Int("cols", cfg.Cols),
		zap.Int("rows", cfg.Rows))
	return jigsaw.Run(board, jigsaw.RunConfig{
		Title:      "jigsaw - " + cfg.ImageURL,
		Width:      opts.width,
		Height:     opts.height,
		ClearColor: jigsaw.Color{R: 0.95, G: 0.95, B: 0.97, A: 1},
		ShowFPS:    opts.showFPS,
		ShowHUD:    true,
		Controls:   true,
	})
}

// buildConfig merges the preset file (if any) with the command line. Flags
// that were set explicitly win over preset values; the image argument wins
// over the preset image.
func buildConfig(cmd *cobra.Command, opts *playOptions, args []string) (jigsaw.Config, error) {
	var cfg jigsaw.Config
	if opts.preset != "" {
		data, err := os.ReadFile(opts.preset)
		if err != nil {
			return jigsaw.Config{}, fmt.Errorf("read preset: %w", err)
		}
		cfg, err = jigsaw.LoadPreset(data)
		if err != nil {
			return jigsaw.Config{}, err
		}
	}
	flags := cmd.Flags()
	override := func(name string) bool {
		return opts.preset == "" || flags.Changed(name)
	}
	if len(args) > 0 {
		cfg.ImageURL = args[0]
	}
	if cfg.ImageURL == "" {
		return jigsaw.Config{}, fmt.Errorf("no image given: pass a path or URL, or a preset with an image")
	}
	if override("cols") || cfg.Cols == 0 {
		cfg.Cols = opts.cols
	}
	if override("rows") || cfg.Rows == 0 {
		cfg.Rows = opts.rows
	}
	if override("snap") || cfg.SnapDistance == 0 {
		cfg.SnapDistance = opts.snap
	}
	if override("ghost") || cfg.BackgroundOpacity == nil {
		cfg.BackgroundOpacity = jigsaw.Opacity(opts.ghost)
	}
	if opts.debug {
		cfg.Debug = true
	}
	if override("screenshots") || cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = opts.screenshotDir
	}
	return cfg, nil
}
