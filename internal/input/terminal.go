package input

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/frameloop/internal/event"
)

type keyState struct {
	state event.Type
	mods  event.Modifiers
	idle  int // polls since the last press or repeat
}

// Terminal is an event source fed by a terminal host. The host calls Feed as
// records arrive and the scheduler calls Poll once per frame. Both must run
// on the same goroutine.
type Terminal struct {
	releaseAfter int

	backlog []Raw
	keys    map[event.KeyCode]*keyState
	buttons [event.MouseButtons]bool
	text    strings.Builder

	mouseX, mouseY float64
	width, height  int
	focused        bool
	quit           bool
}

// NewTerminal creates a source. Terminals report presses and repeats but no
// releases, so a key that is not repeated for releaseAfter polls is released
// by the source itself. Zero keeps keys down until a KeyUp arrives.
func NewTerminal(releaseAfter int) *Terminal {
	if releaseAfter < 0 {
		releaseAfter = 0
	}
	return &Terminal{
		releaseAfter: releaseAfter,
		keys:         make(map[event.KeyCode]*keyState),
		focused:      true,
	}
}

// Feed queues r for the next Poll. Nil records are ignored.
func (t *Terminal) Feed(r Raw) {
	if r == nil {
		return
	}
	t.backlog = append(t.backlog, r)
}

// Pending returns the number of records waiting for Poll.
func (t *Terminal) Pending() int {
	return len(t.backlog)
}

// Poll converts the backlog into events on q, then reports every held mouse
// button as pressed again and every held key as a hold.
func (t *Terminal) Poll(q *event.Queue) {
	t.text.Reset()
	for code, k := range t.keys {
		if !k.state.Has(event.KeyPressed) {
			delete(t.keys, code)
		}
	}

	pressed := make(map[event.KeyCode]bool)
	for _, r := range t.backlog {
		t.translate(r, q, pressed)
	}
	clear(t.backlog)
	t.backlog = t.backlog[:0]

	for b := event.MouseLeft; int(b) < event.MouseButtons; b++ {
		if t.buttons[b] {
			pushButton(q, event.MousePressed, b)
		}
	}

	codes := make([]event.KeyCode, 0, len(t.keys))
	for code := range t.keys {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	for _, code := range codes {
		k := t.keys[code]
		if !k.state.Has(event.KeyPressed) {
			continue
		}
		if !pressed[code] {
			k.idle++
		}
		if t.releaseAfter > 0 && k.idle >= t.releaseAfter {
			k.state = event.KeyReleased
			q.Push(event.NewKeyReleased(code, k.mods))
			continue
		}
		q.Push(event.NewKeyHold(code, k.mods))
	}
}

func (t *Terminal) translate(r Raw, q *event.Queue, pressed map[event.KeyCode]bool) {
	switch r := r.(type) {
	case KeyDown:
		if r.Code == event.KeyUnknown {
			break
		}
		state := event.KeyPressed
		if k, ok := t.keys[r.Code]; ok && k.state.Has(event.KeyPressed) {
			state = event.KeyHold
		}
		t.keys[r.Code] = &keyState{state: state, mods: r.Mods}
		pressed[r.Code] = true
		q.Push(event.NewKeyPressed(r.Code, r.Mods))
		if r.Text != "" {
			t.pushText(q, r.Text)
		}

	case KeyUp:
		t.keys[r.Code] = &keyState{state: event.KeyReleased, mods: r.Mods}
		delete(pressed, r.Code)
		q.Push(event.NewKeyReleased(r.Code, r.Mods))

	case Text:
		if r.Text != "" {
			t.pushText(q, r.Text)
		}

	case MouseMotion:
		t.mouseX, t.mouseY = r.X, r.Y
		q.Push(event.NewMouseMove(r.X, r.Y))

	case MouseDown:
		if r.Button == event.MouseNone || int(r.Button) >= event.MouseButtons {
			break
		}
		t.buttons[r.Button] = true
		pushButton(q, event.MousePressed, r.Button)

	case MouseUp:
		if r.Button != event.MouseNone {
			if int(r.Button) < event.MouseButtons {
				t.buttons[r.Button] = false
				pushButton(q, event.MouseReleased, r.Button)
			}
			break
		}
		for b := event.MouseLeft; int(b) < event.MouseButtons; b++ {
			if t.buttons[b] {
				t.buttons[b] = false
				pushButton(q, event.MouseReleased, b)
			}
		}

	case Wheel:
		q.Push(event.NewMouseWheel(r.X, r.Y))

	case Resize:
		t.width, t.height = r.Width, r.Height
		q.Push(event.NewWindowResize(r.Width, r.Height))

	case Focus:
		t.focused = r.Focused
		typ := event.WindowLoseFocus
		if r.Focused {
			typ = event.WindowFocus
		}
		if ev, err := event.NewWindowEvent(typ, t.width, t.height); err == nil {
			q.Push(ev)
		}

	case Quit:
		t.quit = true
		if ev, err := event.NewWindowEvent(event.WindowClose, t.width, t.height); err == nil {
			q.Push(ev)
		}
	}
}

func (t *Terminal) pushText(q *event.Queue, text string) {
	t.text.WriteString(text)
	q.Push(event.NewTextInput(text))
}

func pushButton(q *event.Queue, typ event.Type, b event.MouseCode) {
	if ev, err := event.NewMouseButton(typ, b); err == nil {
		q.Push(ev)
	}
}

// QuitRequested reports whether the host or a layer asked to quit.
func (t *Terminal) QuitRequested() bool {
	return t.quit
}

// RequestQuit makes QuitRequested return true.
func (t *Terminal) RequestQuit() {
	t.quit = true
}

// MousePos returns the last reported pointer position in cells.
func (t *Terminal) MousePos() (x, y float64) {
	return t.mouseX, t.mouseY
}

// ButtonDown reports whether b is held.
func (t *Terminal) ButtonDown(b event.MouseCode) bool {
	return b != event.MouseNone && int(b) < event.MouseButtons && t.buttons[b]
}

// Focused reports whether the terminal has focus. Hosts that do not report
// focus are always focused.
func (t *Terminal) Focused() bool {
	return t.focused
}

// Text returns the text typed during the last poll.
func (t *Terminal) Text() string {
	return t.text.String()
}

// KeyState returns the state of code as of the last poll: KeyPressed,
// KeyHold, KeyReleased or TypeNone. Each modifier filter must be satisfied
// by the modifiers held with the key; ModNone requires that none were held.
func (t *Terminal) KeyState(code event.KeyCode, mods ...event.Modifiers) (event.Type, error) {
	for _, m := range mods {
		if err := m.Validate(); err != nil {
			return event.TypeNone, fmt.Errorf("input: cannot query key %s: %w", code, err)
		}
	}

	k, ok := t.keys[code]
	if !ok || k.state == event.TypeNone {
		return event.TypeNone, nil
	}
	for _, m := range mods {
		if m == event.ModNone {
			if k.mods.Matches(event.ModNone) {
				return k.state, nil
			}
			return event.TypeNone, nil
		}
		if !k.mods.Matches(m) {
			return event.TypeNone, nil
		}
	}
	return k.state, nil
}
