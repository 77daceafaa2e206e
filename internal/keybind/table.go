// Package keybind resolves raw key codes into application actions.
//
// A Table holds at most one binding per key code. Binding a code that is
// already bound replaces the previous action, so rebinding is idempotent and
// the latest call always wins.
package keybind

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/frameloop/internal/event"
)

// Action is invoked when its key fires. It reports whether it succeeded.
type Action func() bool

// Binding associates a key code with a named action.
type Binding struct {
	Name   string
	Code   event.KeyCode
	Action Action
}

// Table maps key codes to bindings.
type Table struct {
	bindings map[event.KeyCode]Binding
}

// NewTable creates a table pre-filled with bindings. Later entries replace
// earlier ones with the same code.
func NewTable(bindings ...Binding) *Table {
	t := &Table{bindings: make(map[event.KeyCode]Binding, len(bindings))}
	for _, b := range bindings {
		t.Bind(b.Code, b.Name, b.Action)
	}
	return t
}

// Bind binds code to action, replacing any existing binding for code.
// It reports whether a previous binding was replaced. A nil action is
// stored as one that always fails.
func (t *Table) Bind(code event.KeyCode, name string, action Action) (replaced bool) {
	if t.bindings == nil {
		t.bindings = make(map[event.KeyCode]Binding)
	}
	if action == nil {
		action = func() bool { return false }
	}
	_, replaced = t.bindings[code]
	t.bindings[code] = Binding{Name: name, Code: code, Action: action}
	return replaced
}

// Unbind removes the binding for code and reports whether one existed.
func (t *Table) Unbind(code event.KeyCode) bool {
	if _, ok := t.bindings[code]; !ok {
		return false
	}
	delete(t.bindings, code)
	return true
}

// Lookup returns the binding for code.
func (t *Table) Lookup(code event.KeyCode) (Binding, bool) {
	b, ok := t.bindings[code]
	return b, ok
}

// Fire runs the action bound to code and returns its result. An unbound
// code returns false without side effects.
func (t *Table) Fire(code event.KeyCode) bool {
	b, ok := t.bindings[code]
	if !ok {
		return false
	}
	return b.Action()
}

// FireAll fires every code in order and returns true only if every code was
// bound and every action succeeded. All codes are fired even after a
// failure.
func (t *Table) FireAll(codes ...event.KeyCode) bool {
	ok := true
	for _, code := range codes {
		if !t.Fire(code) {
			ok = false
		}
	}
	return ok
}

// HandleKey fires the binding for a key press event and marks the event
// handled if the action succeeded. Holds, releases and other events are
// ignored so toggles do not repeat while a key stays down.
func (t *Table) HandleKey(ev event.Event) bool {
	key, ok := ev.(*event.KeyEvent)
	if !ok || ev.Handled() || key.Type() != event.KeyPressed {
		return false
	}
	if !t.Fire(key.Code) {
		return false
	}
	ev.SetHandled(true)
	return true
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// Bindings returns a snapshot of all bindings ordered by key code.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.bindings))
	for _, b := range t.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

// FromConfig builds a table from key name → action name pairs, resolving
// action names against actions. Every unknown key or action is reported.
func FromConfig(keys map[string]string, actions map[string]Action) (*Table, error) {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	t := NewTable()
	var errs []error
	for _, keyName := range names {
		actionName := keys[keyName]
		code, err := event.ParseKeyCode(keyName)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		action, ok := actions[actionName]
		if !ok {
			errs = append(errs, fmt.Errorf("keybind: unknown action %q for key %q", actionName, keyName))
			continue
		}
		if t.Bind(code, actionName, action) {
			errs = append(errs, fmt.Errorf("keybind: key %q bound more than once", keyName))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}
