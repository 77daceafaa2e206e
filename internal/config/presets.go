package config

import (
	"fmt"
	"time"
)

// Preset is a named frame pacing profile selectable from the command line.
type Preset string

const (
	PresetEco    Preset = "eco"
	PresetNormal Preset = "normal"
	PresetSmooth Preset = "smooth"
)

// Presets lists the accepted preset names.
func Presets() []Preset {
	return []Preset{PresetEco, PresetNormal, PresetSmooth}
}

// ApplyPreset adjusts the frame rate and clamp for p. Layer tick rates are
// left alone so the simulation runs at the same logical speed under every
// preset.
func ApplyPreset(cfg *Config, p Preset) error {
	switch p {
	case PresetEco:
		cfg.Scheduler.FrameRate = 20
		cfg.Scheduler.MaxFrameTime = 500 * time.Millisecond
		cfg.Input.ReleaseAfter = 10
	case PresetNormal:
		cfg.Scheduler.FrameRate = 60
		cfg.Scheduler.MaxFrameTime = 250 * time.Millisecond
		cfg.Input.ReleaseAfter = 30
	case PresetSmooth:
		cfg.Scheduler.FrameRate = 120
		cfg.Scheduler.MaxFrameTime = 250 * time.Millisecond
		cfg.Input.ReleaseAfter = 60
	default:
		return fmt.Errorf("config: unknown preset %q", p)
	}
	return nil
}
