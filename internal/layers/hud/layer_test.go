package hud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/event"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/input"
	"github.com/vovakirdan/frameloop/internal/keybind"
	"github.com/vovakirdan/frameloop/internal/registry"
)

type fakeWorld struct {
	frame.Base
}

func (fakeWorld) Position() (float64, float64) { return 1.5, -2 }
func (fakeWorld) Biome() string                 { return "grass" }

type fixture struct {
	hud   *Layer
	world *fakeWorld
	input *input.Terminal
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	world := &fakeWorld{Base: frame.NewBase(PauseTarget, 0)}
	term := input.NewTerminal(0)

	var hud *Layer
	env := registry.Env{
		Screen: core.NewScreen(60, 12),
		Input:  term,
		Stats:  func() frame.Stats { return frame.Stats{FPS: 60, TPS: 35, TotalTicks: 350} },
		Tick:   func() uint64 { return 360 },
		Layer: func(id string) (frame.Layer, bool) {
			if id == PauseTarget {
				return world, true
			}
			return nil, false
		},
		Bindings: func() []keybind.Binding { return hud.bindings.Bindings() },
	}
	hud = New(env, 0)

	tbl, err := keybind.FromConfig(map[string]string{
		"p": "pause", "?": "toggle_help", "f1": "toggle_help", "q": "quit",
	}, hud.Actions())
	require.NoError(t, err)
	hud.SetBindings(tbl)

	return fixture{hud: hud, world: world, input: term}
}

func TestStatusLine(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "fps 60  tps 35  tick 360  1.5,-2.0 grass", f.hud.Status())

	f.hud.Draw(0)
	assert.True(t, strings.HasPrefix(f.hud.env.Screen.Row(0), "fps 60"))
}

func TestPauseTogglesWorld(t *testing.T) {
	f := newFixture(t)

	ev := event.NewKeyPressed('p', event.ModNone)
	f.hud.HandleEvent(ev)
	assert.True(t, ev.Handled(), "handled events stop at the hud")
	assert.False(t, f.world.Active())
	assert.Contains(t, f.hud.Status(), "[paused]")

	f.hud.HandleEvent(event.NewKeyPressed('p', event.ModNone))
	assert.True(t, f.world.Active())
}

func TestPauseWithoutWorld(t *testing.T) {
	h := New(registry.Env{}, 0)
	assert.False(t, h.togglePause())
	assert.False(t, h.quit())
	assert.Empty(t, h.Status())
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	f.hud.HandleEvent(event.NewKeyPressed('q', event.ModNone))
	assert.True(t, f.input.QuitRequested())
}

func TestUnboundKeysPassThrough(t *testing.T) {
	f := newFixture(t)
	ev := event.NewKeyPressed('w', event.ModNone)
	f.hud.HandleEvent(ev)
	assert.False(t, ev.Handled())
}

func TestHelpLine(t *testing.T) {
	f := newFixture(t)
	f.hud.Draw(0)

	bottom := f.hud.env.Screen.Row(11)
	assert.Contains(t, bottom, "p pause")
	assert.Contains(t, bottom, "?/f1 toggle help")
}

func TestFullHelpOverlay(t *testing.T) {
	f := newFixture(t)
	f.hud.HandleEvent(event.NewKeyPressed(event.KeyF1, event.ModNone))
	require.True(t, f.hud.HelpVisible())

	f.hud.Draw(0)
	screen := f.hud.env.Screen.String()
	assert.Contains(t, screen, "┌")
	assert.Contains(t, screen, "quit")
}

func TestKeyMapGroupsByAction(t *testing.T) {
	km := newKeyMap([]keybind.Binding{
		{Name: "move_up", Code: 'w'},
		{Name: "move_up", Code: event.KeyUp},
		{Name: "quit", Code: 'q'},
	})
	require.Len(t, km.ShortHelp(), 2)
	assert.Equal(t, "w/up", km.ShortHelp()[0].Help().Key)
	assert.Equal(t, "move up", km.ShortHelp()[0].Help().Desc)
	assert.Len(t, km.FullHelp(), 1)
}
