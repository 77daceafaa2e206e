package console

import (
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

type target struct{ frame.Base }

func newConsole(t *testing.T) (*Layer, *input.Terminal, *target) {
	t.Helper()
	term := input.NewTerminal(0)
	world := &target{Base: frame.NewBase("world", 0)}
	env := registry.Env{
		Screen: core.NewScreen(40, 10),
		Input:  term,
		Tick:   func() uint64 { return 7 },
		Layer: func(id string) (frame.Layer, bool) {
			if id == "world" {
				return world, true
			}
			return nil, false
		},
	}
	l := New(env, 0)
	tbl, err := keybind.FromConfig(map[string]string{":": "open"}, l.Actions())
	require.NoError(t, err)
	l.SetBindings(tbl)
	return l, term, world
}

func typeLine(l *Layer, text string) {
	for _, r := range text {
		l.HandleEvent(event.NewKeyPressed(event.KeyCode(r), event.ModNone))
		l.HandleEvent(event.NewTextInput(string(r)))
	}
}

func enter(l *Layer) {
	l.HandleEvent(event.NewKeyPressed(event.KeyReturn, event.ModNone))
}

func TestOpenSwallowsTriggerText(t *testing.T) {
	l, _, _ := newConsole(t)

	press := event.NewKeyPressed(':', event.ModNone)
	l.HandleEvent(press)
	require.True(t, l.Open())
	assert.True(t, press.Handled())

	text := event.NewTextInput(":")
	l.HandleEvent(text)
	assert.True(t, text.Handled())
	assert.Empty(t, l.Input(), "the opening colon is not typed")

	l.StartFrame()
	l.HandleEvent(event.NewTextInput(":"))
	assert.Equal(t, ":", l.Input(), "later colons are")
}

func TestClosedConsolePassesEventsThrough(t *testing.T) {
	l, _, _ := newConsole(t)

	key := event.NewKeyPressed('w', event.ModNone)
	text := event.NewTextInput("w")
	l.HandleEvent(key)
	l.HandleEvent(text)

	assert.False(t, key.Handled())
	assert.False(t, text.Handled())
}

func TestOpenConsoleCapturesKeys(t *testing.T) {
	l, _, _ := newConsole(t)
	l.Actions()["open"]()
	l.StartFrame()

	hold := event.NewKeyHold('d', event.ModNone)
	release := event.NewKeyReleased('d', event.ModNone)
	wheel := event.NewMouseWheel(0, 1)
	l.HandleEvent(hold)
	l.HandleEvent(release)
	l.HandleEvent(wheel)

	assert.True(t, hold.Handled())
	assert.True(t, release.Handled())
	assert.False(t, wheel.Handled(), "mouse input is not captured")
}

func TestCommands(t *testing.T) {
	l, term, world := newConsole(t)
	l.Actions()["open"]()
	l.StartFrame()

	typeLine(l, "pause")
	enter(l)
	assert.False(t, world.Active())
	assert.True(t, l.Open(), "the console stays open after a command")

	typeLine(l, "tick")
	enter(l)
	typeLine(l, "bogus")
	enter(l)
	assert.Equal(t, []string{"world paused", "tick 7", `unknown command "bogus"`}, l.Output())

	l.Exec("resume world")
	assert.True(t, world.Active())

	l.Exec("pause nothing")
	assert.Equal(t, `no layer "nothing"`, l.Output()[len(l.Output())-1])

	l.Exec("help")
	assert.Equal(t, "commands: clear help pause quit resume tick", l.Output()[len(l.Output())-1])
	assert.Len(t, l.Output(), maxOutput)

	l.Exec("clear")
	assert.Empty(t, l.Output())

	l.Exec("quit")
	assert.True(t, term.QuitRequested())
}

func TestEditingAndHistory(t *testing.T) {
	l, _, _ := newConsole(t)
	l.Actions()["open"]()
	l.StartFrame()

	typeLine(l, "tickk")
	l.HandleEvent(event.NewKeyPressed(event.KeyBackspace, event.ModNone))
	assert.Equal(t, "tick", l.Input())
	enter(l)
	l.Exec("clear")

	up := func() { l.HandleEvent(event.NewKeyPressed(event.KeyUp, event.ModNone)) }
	down := func() { l.HandleEvent(event.NewKeyPressed(event.KeyDown, event.ModNone)) }

	up()
	assert.Equal(t, "clear", l.Input())
	up()
	assert.Equal(t, "tick", l.Input())
	up()
	assert.Equal(t, "tick", l.Input(), "history stops at the oldest line")
	down()
	assert.Equal(t, "clear", l.Input())
	down()
	assert.Empty(t, l.Input())
}

func TestCloseAndDraw(t *testing.T) {
	l, _, _ := newConsole(t)
	l.Actions()["open"]()
	l.Exec("tick")

	l.Draw(0)
	screen := l.env.Screen
	assert.Contains(t, screen.Row(7), "tick 7")
	assert.Contains(t, screen.Row(8), ":_")

	l.HandleEvent(event.NewKeyPressed(event.KeyEscape, event.ModNone))
	assert.False(t, l.Open())

	l.Actions()["open"]()
	enter(l)
	assert.False(t, l.Open(), "an empty line closes the console")
}
