package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/frameloop/internal/config"
	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/event"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/input"
	"github.com/vovakirdan/frameloop/internal/keybind"
	"github.com/vovakirdan/frameloop/internal/registry"
)

func newWorld(t *testing.T) *Layer {
	t.Helper()
	env := registry.Env{
		Runtime: core.RuntimeConfig{Seed: 42},
		Screen:  core.NewScreen(20, 10),
	}
	l := New(env, 20*time.Millisecond)
	tbl, err := keybind.FromConfig(map[string]string{
		"w": "move_up", "s": "move_down", "a": "move_left", "d": "move_right",
		"c": "center", "+": "faster", "-": "slower",
	}, l.Actions())
	require.NoError(t, err)
	l.SetBindings(tbl)
	return l
}

func press(l *Layer, code event.KeyCode) *event.KeyEvent {
	ev := event.NewKeyPressed(code, event.ModNone)
	l.HandleEvent(ev)
	return ev
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))
	l, err := registry.Create(ID, registry.Env{Screen: core.NewScreen(4, 4)}, 0)
	require.NoError(t, err)
	assert.Equal(t, TickLength, l.DeltaTime())
	assert.Equal(t, 28571428*time.Nanosecond, l.DeltaTime())
}

func TestTickLengthMatchesConfiguredRate(t *testing.T) {
	lc := config.LayerConfig{ID: ID, TickRate: TickRate}
	assert.Equal(t, TickLength, lc.DeltaTime())
}

func TestIntentLatchedUntilTick(t *testing.T) {
	l := newWorld(t)

	ev := press(l, 'd')
	assert.True(t, ev.Handled())
	x, _ := l.Position()
	assert.Zero(t, x, "the camera only moves on a tick")

	l.Update()
	x, _ = l.Position()
	assert.Equal(t, 1.0, x)

	l.Update()
	x, _ = l.Position()
	assert.Equal(t, 1.0, x, "an intent is consumed by one tick")

	press(l, 'w')
	press(l, 'w')
	l.Update()
	_, y := l.Position()
	assert.Equal(t, -2.0, y)
}

func TestHoldsDoNotMove(t *testing.T) {
	l := newWorld(t)
	hold := event.NewKeyHold('d', event.ModNone)
	l.HandleEvent(hold)
	l.Update()

	x, _ := l.Position()
	assert.Zero(t, x)
	assert.False(t, hold.Handled())
}

func TestPausedWorldDropsIntents(t *testing.T) {
	l := newWorld(t)
	l.SetActive(false)

	press(l, 'd')
	l.Update()
	assert.Zero(t, l.TotalTime(), "a paused world does not advance")

	l.SetActive(true)
	l.Update()
	x, _ := l.Position()
	assert.Zero(t, x, "the intent latched while paused is gone")
	assert.Equal(t, 20*time.Millisecond, l.TotalTime())
}

func TestCameraInterpolates(t *testing.T) {
	l := newWorld(t)
	press(l, 'd')
	press(l, 's')
	l.Update()

	tests := []struct {
		alpha float64
		x, y  float64
	}{
		{0, 0, 0},
		{0.25, 0.25, 0.25},
		{0.5, 0.5, 0.5},
	}
	for _, tc := range tests {
		x, y := l.Camera(tc.alpha)
		assert.InDelta(t, tc.x, x, 1e-9)
		assert.InDelta(t, tc.y, y, 1e-9)
	}
}

func TestSpeedBindingsAndWheel(t *testing.T) {
	l := newWorld(t)

	press(l, '+')
	assert.Equal(t, 2.0, l.Speed())

	l.HandleEvent(event.NewMouseWheel(0, -1))
	l.HandleEvent(event.NewMouseWheel(0, -1))
	l.HandleEvent(event.NewMouseWheel(0, -1))
	assert.Equal(t, 0.25, l.Speed())

	ev := press(l, '-')
	assert.False(t, ev.Handled(), "slower fails at the minimum speed")
	assert.Equal(t, 0.25, l.Speed())

	press(l, 'd')
	l.Update()
	x, _ := l.Position()
	assert.Equal(t, 0.25, x)

	press(l, 'c')
	x, y := l.Position()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestRightDragPans(t *testing.T) {
	l := newWorld(t)

	l.HandleEvent(event.NewMouseMove(10, 5))
	left, err := event.NewMouseButton(event.MousePressed, event.MouseLeft)
	require.NoError(t, err)
	l.HandleEvent(left)
	assert.False(t, left.Handled(), "only the right button drags")

	right, err := event.NewMouseButton(event.MousePressed, event.MouseRight)
	require.NoError(t, err)
	l.HandleEvent(right)
	assert.True(t, right.Handled())
	assert.True(t, l.Dragging())

	move := event.NewMouseMove(7, 6)
	l.HandleEvent(move)
	assert.True(t, move.Handled())
	assert.True(t, l.MouseMoved())

	x, y := l.Position()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, -1.0, y)
	cx, cy := l.Camera(0)
	assert.Equal(t, x, cx, "drags are not interpolated")
	assert.Equal(t, y, cy)

	l.StartFrame()
	assert.False(t, l.MouseMoved())

	release, err := event.NewMouseButton(event.MouseReleased, event.MouseRight)
	require.NoError(t, err)
	l.HandleEvent(release)
	assert.False(t, l.Dragging())

	after := event.NewMouseMove(0, 0)
	l.HandleEvent(after)
	assert.False(t, after.Handled())
	x2, _ := l.Position()
	assert.Equal(t, x, x2)
}

func TestDrawIsDeterministic(t *testing.T) {
	a := newWorld(t)
	b := newWorld(t)

	a.Draw(0)
	b.Draw(0)
	assert.Equal(t, a.screen.String(), b.screen.String())
	assert.Equal(t, '@', a.screen.Get(10, 5))
	assert.NotEmpty(t, a.Biome())
}

func TestRunsUnderScheduler(t *testing.T) {
	clock := frame.NewManualClock(time.Unix(0, 0))
	src := input.NewTerminal(0)
	sched := frame.New(frame.Config{Clock: clock}, src)

	l := newWorld(t)
	require.NoError(t, sched.AddLayer(l))
	sched.Init()

	src.Feed(input.KeyDown{Code: 'd', Text: "d"})
	clock.Advance(10 * time.Millisecond)
	sched.StartFrame()
	x, _ := l.Position()
	assert.Zero(t, x, "no tick yet at 10ms")

	clock.Advance(10 * time.Millisecond)
	sched.StartFrame()
	x, _ = l.Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, uint64(1), sched.Tick())
}
