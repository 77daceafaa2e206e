package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := embedded()
	require.NoError(t, err)

	want := Default()
	want.Source = cfg.Source
	assert.Equal(t, want, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLayerDeltaTime(t *testing.T) {
	tests := []struct {
		rate     float64
		expected time.Duration
	}{
		{0, 0},
		{-5, 0},
		{50, 20 * time.Millisecond},
		{35, 28571428 * time.Nanosecond},
	}
	for _, tt := range tests {
		got := LayerConfig{ID: "x", TickRate: tt.rate}.DeltaTime()
		if got != tt.expected {
			t.Errorf("DeltaTime() at %vHz = %v, expected %v", tt.rate, got, tt.expected)
		}
	}
}

func TestLoadCustomOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduler:
  frame_rate: 30
  skip_inactive: true
bindings:
  hud:
    x: quit
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, 30, cfg.Scheduler.FrameRate)
	assert.True(t, cfg.Scheduler.SkipInactive)
	assert.Equal(t, 250*time.Millisecond, cfg.Scheduler.MaxFrameTime, "unset keys keep their default")
	assert.Equal(t, 80, cfg.Window.Width)
	assert.Equal(t, map[string]string{"x": "quit"}, cfg.Bindings["hud"], "a layer's key map is replaced")
	assert.Equal(t, "move_up", cfg.Bindings["world"]["w"], "other layers keep theirs")
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "cannot read")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scheduler: [1, 2"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "cannot parse")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("scheduler:\n  frame_rate: 0\n"), 0o600))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "frame_rate")
}

func TestLoadSearchSkipsBrokenFiles(t *testing.T) {
	cfg := Default()
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("layers: {"), 0o600))
	assert.False(t, loadInto(broken, &cfg))
	assert.Equal(t, Default(), cfg)

	assert.False(t, loadInto(filepath.Join(dir, "nope.yaml"), &cfg))

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("window:\n  title: demo\n"), 0o600))
	require.True(t, loadInto(good, &cfg))
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, good, cfg.Source)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Scheduler.MaxFrameTime = 0
	cfg.Input.ReleaseAfter = -1
	cfg.Layers = append(cfg.Layers, LayerConfig{ID: "hud"}, LayerConfig{TickRate: -1})
	cfg.Bindings["ghost"] = map[string]string{"x": "boo"}
	cfg.Bindings["hud"] = map[string]string{"notakey": "quit"}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"window size",
		"max_frame_time",
		"release_after",
		`layer "hud" listed twice`,
		"has no id",
		"negative tick_rate",
		`unknown layer "ghost"`,
		`unknown key name "notakey"`,
	} {
		assert.ErrorContains(t, err, want)
	}

	empty := Default()
	empty.Layers = nil
	empty.Bindings = nil
	assert.ErrorContains(t, empty.Validate(), "no layers")
}

func TestValidateTickRateBounds(t *testing.T) {
	tests := []struct {
		rate float64
		ok   bool
	}{
		{0, true},
		{MinTickRate, true},
		{35, true},
		{MaxTickRate, true},
		{0.1, false},
		{1e-12, false},
		{MaxTickRate + 1, false},
		{1e12, false},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Layers[0].TickRate = tt.rate
		err := cfg.Validate()
		if tt.ok {
			assert.NoError(t, err, "tick_rate %g", tt.rate)
			assert.GreaterOrEqual(t, cfg.Layers[0].DeltaTime(), time.Duration(0))
			continue
		}
		assert.ErrorContains(t, err, "out of range", "tick_rate %g", tt.rate)
	}
}

func TestApplyPreset(t *testing.T) {
	for _, p := range Presets() {
		cfg := Default()
		require.NoError(t, ApplyPreset(&cfg, p), p)
		assert.NoError(t, cfg.Validate(), p)
		assert.Equal(t, Default().Layers, cfg.Layers, "presets never touch tick rates")
	}

	cfg := Default()
	require.NoError(t, ApplyPreset(&cfg, PresetEco))
	assert.Equal(t, 20, cfg.Scheduler.FrameRate)
	assert.Error(t, ApplyPreset(&cfg, "turbo"))
}
