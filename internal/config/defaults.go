package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/frameloop.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/frameloop.yaml.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "frameloop",
			Width:  80,
			Height: 24,
		},
		Scheduler: SchedulerConfig{
			FrameRate:    60,
			MaxFrameTime: 250 * time.Millisecond,
		},
		Input: InputConfig{
			ReleaseAfter: 30,
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Layers: []LayerConfig{
			{ID: "world", TickRate: 35},
			{ID: "hud"},
			{ID: "console"},
		},
		Bindings: map[string]map[string]string{
			"world": {
				"w": "move_up", "s": "move_down", "a": "move_left", "d": "move_right",
				"up": "move_up", "down": "move_down", "left": "move_left", "right": "move_right",
				"c": "center", "+": "faster", "-": "slower",
			},
			"hud": {
				"p": "pause", "?": "toggle_help", "f1": "toggle_help", "q": "quit",
			},
			"console": {
				":": "open",
			},
		},
		Source: "built-in",
	}
}
