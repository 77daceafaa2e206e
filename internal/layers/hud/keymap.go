package hud

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/frameloop/internal/keybind"
)

const helpColumn = 4

// keyMap adapts the stack's key bindings to the help view. Keys bound to
// the same action share one entry.
type keyMap struct {
	bindings []key.Binding
}

func newKeyMap(bindings []keybind.Binding) keyMap {
	var order []string
	keys := make(map[string][]string)
	for _, b := range bindings {
		if _, seen := keys[b.Name]; !seen {
			order = append(order, b.Name)
		}
		keys[b.Name] = append(keys[b.Name], b.Code.String())
	}

	km := keyMap{bindings: make([]key.Binding, 0, len(order))}
	for _, name := range order {
		km.bindings = append(km.bindings, key.NewBinding(
			key.WithKeys(keys[name]...),
			key.WithHelp(strings.Join(keys[name], "/"), strings.ReplaceAll(name, "_", " ")),
		))
	}
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	return k.bindings
}

func (k keyMap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for i := 0; i < len(k.bindings); i += helpColumn {
		cols = append(cols, k.bindings[i:min(i+helpColumn, len(k.bindings))])
	}
	return cols
}
