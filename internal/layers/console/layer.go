// Package console is a command line drawn over the stack. While open it
// takes every key and text event, so nothing below it sees typing. Enter
// runs the line and keeps the console open; an empty line or Esc closes it.
package console

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/event"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/keybind"
	"github.com/vovakirdan/frameloop/internal/registry"
)

const ID = "console"

const (
	maxOutput  = 4
	maxHistory = 32
	blinkTicks = 15
)

func init() {
	registry.Register(ID, "Command console", func(env registry.Env, dt time.Duration) frame.Layer {
		return New(env, dt)
	})
	commands["help"] = help
}

type command func(l *Layer, args []string) string

func help(*Layer, []string) string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "commands: " + strings.Join(names, " ")
}

var commands = map[string]command{
	"quit": func(l *Layer, _ []string) string {
		if l.env.Input != nil {
			l.env.Input.RequestQuit()
		}
		return "bye"
	},
	"pause":  func(l *Layer, args []string) string { return l.setActive(args, false) },
	"resume": func(l *Layer, args []string) string { return l.setActive(args, true) },
	"tick": func(l *Layer, _ []string) string {
		if l.env.Tick == nil {
			return "no scheduler"
		}
		return fmt.Sprintf("tick %d", l.env.Tick())
	},
	"clear": func(l *Layer, _ []string) string {
		l.output = l.output[:0]
		return ""
	},
}

type Layer struct {
	frame.Base

	env      registry.Env
	bindings *keybind.Table

	open       bool
	justOpened bool
	input      []rune
	output     []string
	history    []string
	recall     int // index into history while browsing, len(history) otherwise
	frames     int
}

func New(env registry.Env, dt time.Duration) *Layer {
	return &Layer{
		Base: frame.NewBase(ID, dt),
		env:  env,
	}
}

func (l *Layer) Actions() map[string]keybind.Action {
	return map[string]keybind.Action{
		"open": func() bool {
			if l.open {
				return false
			}
			l.open = true
			l.justOpened = true
			l.input = l.input[:0]
			l.recall = len(l.history)
			return true
		},
	}
}

func (l *Layer) SetBindings(t *keybind.Table) { l.bindings = t }

func (l *Layer) Open() bool { return l.open }

// Input returns the text typed so far.
func (l *Layer) Input() string { return string(l.input) }

// Output returns the most recent command results, oldest first.
func (l *Layer) Output() []string { return l.output }

func (l *Layer) StartFrame() {
	l.justOpened = false
}

func (l *Layer) HandleEvent(ev event.Event) {
	if !l.open {
		if l.bindings != nil {
			l.bindings.HandleKey(ev)
		}
		return
	}

	switch e := ev.(type) {
	case *event.TextInput:
		// The text of the key that opened the console arrives in the same
		// poll as its press.
		if l.justOpened && e.Text == ":" {
			l.justOpened = false
		} else {
			l.input = append(l.input, []rune(e.Text)...)
		}
		e.SetHandled(true)

	case *event.KeyEvent:
		if e.Type() == event.KeyPressed {
			l.key(e.Code)
		}
		e.SetHandled(true)
	}
}

func (l *Layer) key(code event.KeyCode) {
	switch code {
	case event.KeyReturn:
		l.submit()
	case event.KeyEscape:
		l.open = false
	case event.KeyBackspace, event.KeyDelete:
		if n := len(l.input); n > 0 {
			l.input = l.input[:n-1]
		}
	case event.KeyUp:
		if l.recall > 0 {
			l.recall--
			l.input = []rune(l.history[l.recall])
		}
	case event.KeyDown:
		if l.recall < len(l.history)-1 {
			l.recall++
			l.input = []rune(l.history[l.recall])
		} else {
			l.recall = len(l.history)
			l.input = l.input[:0]
		}
	}
}

func (l *Layer) submit() {
	line := strings.TrimSpace(string(l.input))
	l.input = l.input[:0]
	if line == "" {
		l.open = false
		return
	}

	l.history = append(l.history, line)
	if len(l.history) > maxHistory {
		l.history = l.history[len(l.history)-maxHistory:]
	}
	l.recall = len(l.history)

	fields := strings.Fields(line)
	cmd, ok := commands[fields[0]]
	if !ok {
		l.print(fmt.Sprintf("unknown command %q", fields[0]))
		return
	}
	l.env.Log().Debug("console command", "command", line)
	if out := cmd(l, fields[1:]); out != "" {
		l.print(out)
	}
}

// Exec runs a command line as if it had been typed.
func (l *Layer) Exec(line string) {
	l.input = []rune(line)
	l.submit()
}

func (l *Layer) print(s string) {
	l.output = append(l.output, s)
	if len(l.output) > maxOutput {
		l.output = l.output[len(l.output)-maxOutput:]
	}
}

func (l *Layer) setActive(args []string, active bool) string {
	id := "world"
	if len(args) > 0 {
		id = args[0]
	}
	if l.env.Layer == nil {
		return "no layers"
	}
	target, ok := l.env.Layer(id)
	if !ok {
		return fmt.Sprintf("no layer %q", id)
	}
	target.SetActive(active)
	if active {
		return id + " resumed"
	}
	return id + " paused"
}

func (l *Layer) Update() {
	l.Base.Update()
	l.frames++
}

func (l *Layer) Draw(alpha float64) {
	s := l.env.Screen
	if s == nil || !l.open {
		return
	}
	rows := len(l.output) + 1
	top := s.Height() - 1 - rows
	s.DrawRect(core.NewRect(0, top, s.Width(), rows), core.Cell{Rune: ' '})
	for i, line := range l.output {
		s.DrawTextColor(0, top+i, line, core.ColorCyan)
	}

	prompt := ":" + string(l.input)
	if (l.frames/blinkTicks)%2 == 0 {
		prompt += "_"
	}
	s.DrawTextColor(0, top+rows-1, prompt, core.ColorBrightWhite)
}
