package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frameloop/internal/app"
	"github.com/vovakirdan/frameloop/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the layer stack in this terminal",
	Long: `Run the configured layer stack in the current terminal.

Default controls:
  W/A/S/D, arrows  - Move the camera
  Right drag       - Pan the camera
  Wheel, +/-       - Change speed
  C                - Center the camera
  P                - Pause the world
  ?/F1             - Toggle help
  :                - Open the console (Esc or an empty line closes it)
  Q/Ctrl+C         - Quit

Logs are discarded unless --log-file is given, since the terminal is in
use by the frame loop.

Examples:
  frameloop play
  frameloop play --seed 42 --log-file frameloop.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	logger, closeLog, err := newLogger(io.Discard, "frameloop")
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()
	logger.Debug("config loaded", "source", cfg.Source)

	width, height := cfg.Window.Width, cfg.Window.Height
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	a, err := app.New(cfg, app.Options{
		Width:  width,
		Height: height,
		Seed:   flagSeed,
		Logger: logger,
	})
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	if err := tui.Run(a); err != nil {
		fatal("%v", err)
	}
}
