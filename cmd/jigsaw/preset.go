package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/jigsaw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preset <file>",
		Short: "Validate a YAML preset and print it with defaults applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read preset: %w", err)
			}
			out, err := describePreset(data)
			if err != nil {
				return err
			}
			logger.Debug("Preset resolved", zap.String("file", args[0]))
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// resolvedPreset is the printable form of a preset after defaults.
type resolvedPreset struct {
	Image string  `yaml:"image"`
	Cols  int     `yaml:"cols"`
	Rows  int     `yaml:"rows"`
	Snap  float64 `yaml:"snap"`
	Ghost float64 `yaml:"ghost"`
}

// describePreset parses data, checks the grid and returns the preset as
// YAML with defaults filled in.
func describePreset(data []byte) ([]byte, error) {
	cfg, err := jigsaw.LoadPreset(data)
	if err != nil {
		return nil, err
	}
	if cfg.ImageURL == "" {
		return nil, fmt.Errorf("preset has no image")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Resolved()
	r := resolvedPreset{
		Image: cfg.ImageURL,
		Cols:  cfg.Cols,
		Rows:  cfg.Rows,
		Snap:  cfg.SnapDistance,
		Ghost: *cfg.BackgroundOpacity,
	}
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode preset: %w", err)
	}
	return out, nil
}
