// Package config loads the frameloop configuration: window defaults,
// scheduler timing, the layer stack and per-layer key bindings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/frameloop/internal/event"
)

// Config is the root of frameloop.yaml.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Input     InputConfig     `yaml:"input"`
	Server    ServerConfig    `yaml:"server"`

	// Layers lists the stack from bottom to top.
	Layers []LayerConfig `yaml:"layers"`

	// Bindings maps a layer id to key name → action name pairs.
	Bindings map[string]map[string]string `yaml:"bindings"`

	// Source records where the configuration was read from.
	Source string `yaml:"-"`
}

// WindowConfig sizes the window when the host cannot report one.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type SchedulerConfig struct {
	FrameRate    int           `yaml:"frame_rate"`     // frames presented per second
	MaxFrameTime time.Duration `yaml:"max_frame_time"` // clamp for a single frame
	SkipInactive bool          `yaml:"skip_inactive"`  // pass over inactive layers
}

type InputConfig struct {
	// ReleaseAfter is the number of frames a key stays down without a
	// repeat before it is released. 0 never releases.
	ReleaseAfter int `yaml:"release_after"`
}

type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Bounds for a positive tick_rate. Outside them the tick length either
// overflows a time.Duration or rounds to zero.
const (
	MinTickRate = 0.5
	MaxTickRate = 10000.0
)

// LayerConfig places one registered layer in the stack.
type LayerConfig struct {
	ID string `yaml:"id"`

	// TickRate is the logical update rate in Hz. 0 updates once per frame.
	TickRate float64 `yaml:"tick_rate"`
}

// DeltaTime converts the tick rate to a tick length.
func (l LayerConfig) DeltaTime() time.Duration {
	if l.TickRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / l.TickRate)
}

// FrameInterval is the time between presented frames.
func (c Config) FrameInterval() time.Duration {
	if c.Scheduler.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Scheduler.FrameRate)
}

// Validate reports every problem in c.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Scheduler.FrameRate <= 0 || c.Scheduler.FrameRate > 1000 {
		errs = append(errs, fmt.Errorf("config: frame_rate %d out of range 1-1000", c.Scheduler.FrameRate))
	}
	if c.Scheduler.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("config: max_frame_time %s must be positive", c.Scheduler.MaxFrameTime))
	}
	if c.Input.ReleaseAfter < 0 {
		errs = append(errs, fmt.Errorf("config: release_after %d must not be negative", c.Input.ReleaseAfter))
	}

	if len(c.Layers) == 0 {
		errs = append(errs, errors.New("config: no layers configured"))
	}
	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		switch {
		case l.ID == "":
			errs = append(errs, fmt.Errorf("config: layer %d has no id", i))
		case seen[l.ID]:
			errs = append(errs, fmt.Errorf("config: layer %q listed twice", l.ID))
		}
		switch {
		case l.TickRate < 0:
			errs = append(errs, fmt.Errorf("config: layer %q has negative tick_rate", l.ID))
		case l.TickRate > 0 && (l.TickRate < MinTickRate || l.TickRate > MaxTickRate):
			errs = append(errs, fmt.Errorf("config: layer %q tick_rate %g out of range %g-%g",
				l.ID, l.TickRate, MinTickRate, MaxTickRate))
		}
		seen[l.ID] = true
	}

	for layer, keys := range c.Bindings {
		if !seen[layer] {
			errs = append(errs, fmt.Errorf("config: bindings for unknown layer %q", layer))
		}
		for key := range keys {
			if _, err := event.ParseKeyCode(key); err != nil {
				errs = append(errs, fmt.Errorf("config: layer %q: %w", layer, err))
			}
		}
	}
	return errors.Join(errs...)
}
