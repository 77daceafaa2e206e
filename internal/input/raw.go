// Package input turns the raw records a terminal host delivers into events
// for the frame scheduler and keeps the key, button and pointer state that
// layers query between events.
package input

import "github.com/vovakirdan/frameloop/internal/event"

// Raw is an input record as delivered by the host, before it becomes an
// event. The set of records is closed.
type Raw interface {
	raw()
}

// KeyDown reports a key press or an auto-repeat. Text carries the printable
// text the key produced, if any.
type KeyDown struct {
	Code event.KeyCode
	Mods event.Modifiers
	Text string
}

// KeyUp reports a key release. Most terminals never send one.
type KeyUp struct {
	Code event.KeyCode
	Mods event.Modifiers
}

// Text is text that arrived without a key, such as a paste.
type Text struct {
	Text string
}

type MouseMotion struct {
	X, Y float64
}

type MouseDown struct {
	Button event.MouseCode
}

// MouseUp releases Button, or every held button when Button is MouseNone.
type MouseUp struct {
	Button event.MouseCode
}

type Wheel struct {
	X, Y int32
}

type Resize struct {
	Width, Height int
}

type Focus struct {
	Focused bool
}

// Quit asks the host loop to stop.
type Quit struct{}

func (KeyDown) raw()     {}
func (KeyUp) raw()       {}
func (Text) raw()        {}
func (MouseMotion) raw() {}
func (MouseDown) raw()   {}
func (MouseUp) raw()     {}
func (Wheel) raw()       {}
func (Resize) raw()      {}
func (Focus) raw()       {}
func (Quit) raw()        {}
