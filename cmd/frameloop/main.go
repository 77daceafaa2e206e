// frameloop runs a layered fixed-timestep frame loop in the terminal.
//
// Usage:
//
//	frameloop play              - Run the configured layer stack locally
//	frameloop serve             - Serve the layer stack over SSH
//	frameloop layers            - List registered layers and the configured stack
//	frameloop bindings          - Show the key bindings of every layer
//	frameloop simulate          - Walk the tick accumulator with a manual clock
//
// Global flags:
//
//	--config <path>   - Config file (default: search ~/.frameloop and ./configs)
//	--preset <name>   - Frame pacing preset: eco, normal, smooth
//	--fps <rate>      - Override the frame rate
//	--seed <value>    - World seed (0 = random based on time)
//	--log-level       - debug, info, warn or error
//	--log-file <path> - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/config"

	// Import layers to register them
	_ "github.com/vovakirdan/frameloop/internal/layers/console"
	_ "github.com/vovakirdan/frameloop/internal/layers/hud"
	_ "github.com/vovakirdan/frameloop/internal/layers/world"
)

var (
	flagConfig   string
	flagPreset   string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frameloop",
	Short: "A layered fixed-timestep frame loop for the terminal",
	Long: `frameloop drives a stack of layers at independent rates: each layer
ticks at its own fixed rate while frames are presented as fast as the
frame rate allows, with draws interpolated between ticks.

Available commands:
  play      - Run the layer stack in this terminal
  serve     - Serve the layer stack over SSH
  layers    - List registered layers and the configured stack
  bindings  - Show key bindings
  simulate  - Print the accumulator walk for a tick and frame time

Examples:
  frameloop play
  frameloop play --preset smooth
  frameloop serve --ssh :2222
  frameloop simulate --tick 20ms --frame 25ms --frames 8`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Frame pacing preset: eco, normal, smooth")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(layersCmd)
	rootCmd.AddCommand(bindingsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig reads the configuration and applies the global overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
			return cfg, err
		}
	}
	if flagFPS > 0 {
		cfg.Scheduler.FrameRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// newLogger writes to the --log-file if one is given and to fallback
// otherwise. The returned func closes the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
