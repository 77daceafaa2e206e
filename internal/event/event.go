// Package event defines the input events that flow from an input source,
// through the scheduler's queue, down the layer stack.
//
// Events form a closed set of variants behind the Event interface. Consumers
// match on the concrete type with a type switch and may mark an event handled
// to stop it from reaching the layers below.
package event

import (
	"fmt"
	"strings"
)

// Category groups event types by origin. Composite categories carry the bits
// of their parent, so a MouseButton event is also MouseInput and Input.
type Category uint32

const (
	CategoryNone        Category = 0
	CategoryInput       Category = 1 << 0
	CategoryKeyInput    Category = 1<<1 | CategoryInput
	CategoryMouseInput  Category = 1<<2 | CategoryInput
	CategoryMouseButton Category = 1<<3 | CategoryMouseInput
	CategoryWindow      Category = 1 << 4
)

// Has reports whether c shares any bit with f.
func (c Category) Has(f Category) bool {
	return c&f != 0
}

// Is reports whether c contains every bit of f.
func (c Category) Is(f Category) bool {
	return f != CategoryNone && c&f == f
}

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "None"
	case CategoryInput:
		return "Input"
	case CategoryKeyInput:
		return "KeyInput"
	case CategoryMouseInput:
		return "MouseInput"
	case CategoryMouseButton:
		return "MouseButton"
	case CategoryWindow:
		return "Window"
	default:
		return fmt.Sprintf("Category(%#x)", uint32(c))
	}
}

// Type identifies what happened. KeyHold and KeyTextInput include the
// KeyPressed bit, so a `t.Has(KeyPressed)` filter matches all three.
type Type uint32

const (
	TypeNone Type = 0

	KeyPressed   Type = 1 << 0
	KeyHold      Type = KeyPressed | 1<<1
	KeyReleased  Type = 1 << 2
	KeyTextInput Type = 1<<3 | KeyPressed

	MousePressed  Type = 1 << 4
	MouseReleased Type = 1 << 5
	MouseMoved    Type = 1 << 6
	MouseScrolled Type = 1 << 7

	WindowClose     Type = 1 << 8
	WindowResize    Type = 1 << 9
	WindowFocus     Type = 1 << 10
	WindowLoseFocus Type = 1 << 11
	WindowMoved     Type = 1 << 12
)

var typeNames = []struct {
	t    Type
	name string
}{
	{KeyTextInput, "KeyTextInput"},
	{KeyHold, "KeyHold"},
	{KeyPressed, "KeyPressed"},
	{KeyReleased, "KeyReleased"},
	{MousePressed, "MousePressed"},
	{MouseReleased, "MouseReleased"},
	{MouseMoved, "MouseMoved"},
	{MouseScrolled, "MouseScrolled"},
	{WindowClose, "WindowClose"},
	{WindowResize, "WindowResize"},
	{WindowFocus, "WindowFocus"},
	{WindowLoseFocus, "WindowLoseFocus"},
	{WindowMoved, "WindowMoved"},
}

// Has reports whether t shares any bit with f.
func (t Type) Has(f Type) bool {
	return t&f != 0
}

// Is reports whether t contains every bit of f.
func (t Type) Is(f Type) bool {
	return f != TypeNone && t&f == f
}

func (t Type) String() string {
	if t == TypeNone {
		return "None"
	}
	for _, n := range typeNames {
		if t == n.t {
			return n.name
		}
	}

	// Unnamed combination: list the named parts, widest first.
	var parts []string
	rest := t
	for _, n := range typeNames {
		if rest&n.t == n.t {
			parts = append(parts, n.name)
			rest &^= n.t
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Event is implemented by every event variant in this package.
type Event interface {
	Category() Category
	Type() Type
	Handled() bool
	SetHandled(handled bool)

	event()
}

// header carries the identity fields shared by all variants. Only the
// handled flag changes after construction.
type header struct {
	category Category
	typ      Type
	handled  bool
}

func (h *header) Category() Category      { return h.category }
func (h *header) Type() Type              { return h.typ }
func (h *header) Handled() bool           { return h.handled }
func (h *header) SetHandled(handled bool) { h.handled = handled }
func (h *header) event()                  {}

// KeyEvent is a key press, repeat (hold) or release.
type KeyEvent struct {
	header
	Code KeyCode
	Mods Modifiers
}

// NewKeyPressed creates a key-down event.
func NewKeyPressed(code KeyCode, mods Modifiers) *KeyEvent {
	return newKey(KeyPressed, code, mods)
}

// NewKeyHold creates an event for a key that is still down.
func NewKeyHold(code KeyCode, mods Modifiers) *KeyEvent {
	return newKey(KeyHold, code, mods)
}

// NewKeyReleased creates a key-up event.
func NewKeyReleased(code KeyCode, mods Modifiers) *KeyEvent {
	return newKey(KeyReleased, code, mods)
}

func newKey(t Type, code KeyCode, mods Modifiers) *KeyEvent {
	return &KeyEvent{
		header: header{category: CategoryKeyInput, typ: t},
		Code:   code,
		Mods:   mods,
	}
}

// TextInput carries text produced by the keyboard during one poll.
type TextInput struct {
	header
	Text string
}

// NewTextInput creates a text input event.
func NewTextInput(text string) *TextInput {
	return &TextInput{
		header: header{category: CategoryKeyInput, typ: KeyTextInput},
		Text:   text,
	}
}

// MouseMove reports the new pointer position in window cells.
type MouseMove struct {
	header
	X, Y float64
}

// NewMouseMove creates a pointer motion event.
func NewMouseMove(x, y float64) *MouseMove {
	return &MouseMove{
		header: header{category: CategoryMouseInput, typ: MouseMoved},
		X:      x,
		Y:      y,
	}
}

// MouseButton reports a button press or release.
type MouseButton struct {
	header
	Button MouseCode
}

// NewMouseButton creates a button event. t must be MousePressed or
// MouseReleased.
func NewMouseButton(t Type, button MouseCode) (*MouseButton, error) {
	if t != MousePressed && t != MouseReleased {
		return nil, fmt.Errorf("event: %s is not a mouse button type", t)
	}
	if button > MouseX2 {
		return nil, fmt.Errorf("event: unknown mouse button %d", button)
	}
	return &MouseButton{
		header: header{category: CategoryMouseButton, typ: t},
		Button: button,
	}, nil
}

// MouseWheel reports a scroll delta.
type MouseWheel struct {
	header
	X, Y int32
}

// NewMouseWheel creates a scroll event.
func NewMouseWheel(x, y int32) *MouseWheel {
	return &MouseWheel{
		header: header{category: CategoryMouseInput, typ: MouseScrolled},
		X:      x,
		Y:      y,
	}
}

// WindowEvent reports a change to the hosting window. Width and Height are
// only meaningful for WindowResize.
type WindowEvent struct {
	header
	Width, Height int
}

const windowTypes = WindowClose | WindowResize | WindowFocus | WindowLoseFocus | WindowMoved

// NewWindowEvent creates a window event of type t.
func NewWindowEvent(t Type, width, height int) (*WindowEvent, error) {
	if t == TypeNone || t&^windowTypes != 0 || t&(t-1) != 0 {
		return nil, fmt.Errorf("event: %s is not a window type", t)
	}
	return &WindowEvent{
		header: header{category: CategoryWindow, typ: t},
		Width:  width,
		Height: height,
	}, nil
}

// NewWindowResize creates a resize event.
func NewWindowResize(width, height int) *WindowEvent {
	return &WindowEvent{
		header: header{category: CategoryWindow, typ: WindowResize},
		Width:  width,
		Height: height,
	}
}
