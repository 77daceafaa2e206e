// Package registry maps layer ids to factories. Layer packages register
// themselves in init(), so the configured stack can be assembled by id
// without the application importing each layer by name.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/input"
	"github.com/vovakirdan/frameloop/internal/keybind"
)

// Env is what a layer can reach at runtime. The function fields are bound
// by the application once the whole stack exists, so a layer may call them
// from its hooks but not from its factory.
type Env struct {
	Runtime core.RuntimeConfig
	Screen  *core.Screen
	Input   *input.Terminal
	Logger  *log.Logger

	Stats func() frame.Stats
	Tick  func() uint64

	// Layer finds another layer of the stack by id.
	Layer func(id string) (frame.Layer, bool)

	// Bindings lists every key binding in the stack, top layer first.
	Bindings func() []keybind.Binding
}

// Log returns the environment's logger, or a discarding one.
func (e Env) Log() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Bindable is implemented by layers that expose named actions for key
// bindings. The application resolves the configured bindings against
// Actions and hands the resulting table back through SetBindings.
type Bindable interface {
	Actions() map[string]keybind.Action
	SetBindings(t *keybind.Table)
}

// Factory creates a layer that ticks every deltaTime (0 = every frame).
type Factory func(env Env, deltaTime time.Duration) frame.Layer

// Info describes a registered layer.
type Info struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a layer factory. It panics if id is already taken.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: layer %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns the registered layers sorted by id.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for id, e := range entries {
		result = append(result, Info{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a new instance of layer id.
func Create(id string, env Env, deltaTime time.Duration) (frame.Layer, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown layer %q", id)
	}
	l := e.factory(env, deltaTime)
	if l == nil {
		return nil, fmt.Errorf("registry: factory for %q returned no layer", id)
	}
	return l, nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
