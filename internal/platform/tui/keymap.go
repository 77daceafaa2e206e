package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frameloop/internal/event"
	"github.com/vovakirdan/frameloop/internal/input"
)

var namedKeys = map[tea.KeyType]event.KeyCode{
	tea.KeyEnter:     event.KeyReturn,
	tea.KeyTab:       event.KeyTab,
	tea.KeyBackspace: event.KeyBackspace,
	tea.KeyEscape:    event.KeyEscape,
	tea.KeyDelete:    event.KeyDelete,
	tea.KeyInsert:    event.KeyInsert,
	tea.KeyHome:      event.KeyHome,
	tea.KeyEnd:       event.KeyEnd,
	tea.KeyPgUp:      event.KeyPageUp,
	tea.KeyPgDown:    event.KeyPageDown,
	tea.KeyUp:        event.KeyUp,
	tea.KeyDown:      event.KeyDown,
	tea.KeyLeft:      event.KeyLeft,
	tea.KeyRight:     event.KeyRight,
	tea.KeyF1:        event.KeyF1,
	tea.KeyF2:        event.KeyF2,
	tea.KeyF3:        event.KeyF3,
	tea.KeyF4:        event.KeyF4,
	tea.KeyF5:        event.KeyF5,
	tea.KeyF6:        event.KeyF6,
	tea.KeyF7:        event.KeyF7,
	tea.KeyF8:        event.KeyF8,
	tea.KeyF9:        event.KeyF9,
	tea.KeyF10:       event.KeyF10,
	tea.KeyF11:       event.KeyF11,
	tea.KeyF12:       event.KeyF12,
}

// Keys that terminals report as their own types carry a modifier.
var modifiedKeys = map[tea.KeyType]struct {
	code event.KeyCode
	mods event.Modifiers
}{
	tea.KeyShiftTab:   {event.KeyTab, event.ModLShift},
	tea.KeyShiftUp:    {event.KeyUp, event.ModLShift},
	tea.KeyShiftDown:  {event.KeyDown, event.ModLShift},
	tea.KeyShiftLeft:  {event.KeyLeft, event.ModLShift},
	tea.KeyShiftRight: {event.KeyRight, event.ModLShift},
	tea.KeyCtrlUp:     {event.KeyUp, event.ModLCtrl},
	tea.KeyCtrlDown:   {event.KeyDown, event.ModLCtrl},
	tea.KeyCtrlLeft:   {event.KeyLeft, event.ModLCtrl},
	tea.KeyCtrlRight:  {event.KeyRight, event.ModLCtrl},
}

var mouseButtons = map[tea.MouseButton]event.MouseCode{
	tea.MouseButtonLeft:     event.MouseLeft,
	tea.MouseButtonMiddle:   event.MouseMiddle,
	tea.MouseButtonRight:    event.MouseRight,
	tea.MouseButtonBackward: event.MouseX1,
	tea.MouseButtonForward:  event.MouseX2,
}

// Translate turns a Bubble Tea message into an input record. It reports
// false for messages that carry no input.
func Translate(msg tea.Msg) (input.Raw, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return translateKey(msg)
	case tea.MouseMsg:
		return translateMouse(msg)
	case tea.WindowSizeMsg:
		return input.Resize{Width: msg.Width, Height: msg.Height}, true
	case tea.FocusMsg:
		return input.Focus{Focused: true}, true
	case tea.BlurMsg:
		return input.Focus{Focused: false}, true
	}
	return nil, false
}

func translateKey(msg tea.KeyMsg) (input.Raw, bool) {
	var mods event.Modifiers
	if msg.Alt {
		mods |= event.ModLAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) != 1 {
			return input.Text{Text: string(msg.Runes)}, len(msg.Runes) > 0
		}
		r := msg.Runes[0]
		code := event.KeyCode(r)
		if r >= 'A' && r <= 'Z' {
			code = event.KeyCode(r + ('a' - 'A'))
			mods |= event.ModLShift
		}
		if !event.IsCharKey(code) {
			// Non-ASCII runes have no key of their own but still type.
			return input.Text{Text: string(r)}, true
		}
		return input.KeyDown{Code: code, Mods: mods, Text: string(r)}, true

	case tea.KeySpace:
		return input.KeyDown{Code: event.KeySpace, Mods: mods, Text: " "}, true
	}

	if code, ok := namedKeys[msg.Type]; ok {
		return input.KeyDown{Code: code, Mods: mods}, true
	}
	if k, ok := modifiedKeys[msg.Type]; ok {
		return input.KeyDown{Code: k.code, Mods: mods | k.mods}, true
	}
	// Enter, Tab and Backspace share values with ctrl letters, so the named
	// keys are matched first.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		code := event.KeyA + event.KeyCode(msg.Type-tea.KeyCtrlA)
		return input.KeyDown{Code: code, Mods: mods | event.ModLCtrl}, true
	}
	return nil, false
}

func translateMouse(msg tea.MouseMsg) (input.Raw, bool) {
	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return input.Wheel{Y: 1}, true
		case tea.MouseButtonWheelDown:
			return input.Wheel{Y: -1}, true
		case tea.MouseButtonWheelLeft:
			return input.Wheel{X: -1}, true
		case tea.MouseButtonWheelRight:
			return input.Wheel{X: 1}, true
		}
		return nil, false
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return input.MouseMotion{X: float64(msg.X), Y: float64(msg.Y)}, true
	case tea.MouseActionPress:
		if b, ok := mouseButtons[msg.Button]; ok {
			return input.MouseDown{Button: b}, true
		}
	case tea.MouseActionRelease:
		// X10 mouse reporting does not say which button was released.
		return input.MouseUp{Button: mouseButtons[msg.Button]}, true
	}
	return nil, false
}
