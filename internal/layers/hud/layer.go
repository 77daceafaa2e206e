// Package hud draws the status line and key help over the layers below it
// and owns the global actions: pause, help and quit.
package hud

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/event"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/keybind"
	"github.com/vovakirdan/frameloop/internal/registry"
)

const ID = "hud"

// PauseTarget is the layer the pause action toggles.
const PauseTarget = "world"

func init() {
	registry.Register(ID, "Status and help", func(env registry.Env, dt time.Duration) frame.Layer {
		return New(env, dt)
	})
}

type positioner interface {
	Position() (x, y float64)
	Biome() string
}

type Layer struct {
	frame.Base

	env      registry.Env
	bindings *keybind.Table
	help     help.Model
	keys     *keyMap
	showHelp bool
}

func New(env registry.Env, dt time.Duration) *Layer {
	h := help.New()
	h.Styles = help.Styles{}
	return &Layer{
		Base: frame.NewBase(ID, dt),
		env:  env,
		help: h,
	}
}

func (l *Layer) Actions() map[string]keybind.Action {
	return map[string]keybind.Action{
		"pause":       l.togglePause,
		"toggle_help": l.toggleHelp,
		"quit":        l.quit,
	}
}

func (l *Layer) SetBindings(t *keybind.Table) { l.bindings = t }

func (l *Layer) HandleEvent(ev event.Event) {
	if l.bindings != nil {
		l.bindings.HandleKey(ev)
	}
}

func (l *Layer) Draw(alpha float64) {
	s := l.env.Screen
	if s == nil || s.Height() == 0 {
		return
	}
	s.DrawRect(core.NewRect(0, 0, s.Width(), 1), core.Cell{Rune: ' '})
	s.DrawTextColor(0, 0, l.Status(), core.ColorBrightWhite)

	l.help.Width = s.Width()
	if l.showHelp {
		l.drawFullHelp(s)
		return
	}
	if s.Height() > 1 {
		row := s.Height() - 1
		s.DrawRect(core.NewRect(0, row, s.Width(), 1), core.Cell{Rune: ' '})
		s.DrawTextColor(0, row, l.help.View(l.keyMap()), core.ColorGray)
	}
}

func (l *Layer) drawFullHelp(s *core.Screen) {
	l.help.ShowAll = true
	lines := strings.Split(l.help.View(l.keyMap()), "\n")
	l.help.ShowAll = false

	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	box := core.NewRect((s.Width()-w-4)/2, (s.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	s.DrawRect(box, core.Cell{Rune: ' '})
	s.DrawBox(box, core.ColorCyan)
	for i, line := range lines {
		s.DrawText(box.X+2, box.Y+1+i, line)
	}
}

// Status is the text of the top line.
func (l *Layer) Status() string {
	var b strings.Builder
	if l.env.Stats != nil {
		st := l.env.Stats()
		fmt.Fprintf(&b, "fps %d  tps %d", st.FPS, st.TPS)
	}
	if l.env.Tick != nil {
		fmt.Fprintf(&b, "  tick %d", l.env.Tick())
	}
	if target, ok := l.target(); ok {
		if p, ok := target.(positioner); ok {
			x, y := p.Position()
			fmt.Fprintf(&b, "  %.1f,%.1f %s", x, y, p.Biome())
		}
		if !target.Active() {
			b.WriteString("  [paused]")
		}
	}
	return strings.TrimLeft(b.String(), " ")
}

// HelpVisible reports whether the full help overlay is shown.
func (l *Layer) HelpVisible() bool { return l.showHelp }

func (l *Layer) keyMap() keyMap {
	if l.keys == nil && l.env.Bindings != nil {
		km := newKeyMap(l.env.Bindings())
		l.keys = &km
	}
	if l.keys == nil {
		return keyMap{}
	}
	return *l.keys
}

func (l *Layer) target() (frame.Layer, bool) {
	if l.env.Layer == nil {
		return nil, false
	}
	return l.env.Layer(PauseTarget)
}

func (l *Layer) togglePause() bool {
	target, ok := l.target()
	if !ok {
		return false
	}
	target.SetActive(!target.Active())
	l.env.Log().Info("pause toggled", "layer", target.Name(), "active", target.Active())
	return true
}

func (l *Layer) toggleHelp() bool {
	l.showHelp = !l.showHelp
	return true
}

func (l *Layer) quit() bool {
	if l.env.Input == nil {
		return false
	}
	l.env.Input.RequestQuit()
	return true
}
