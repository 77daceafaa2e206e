// Package app assembles a configured layer stack around a scheduler, an
// input source and a renderer, and runs the outer loop one frame at a time.
// Hosts (the local terminal, SSH sessions, the headless simulator) feed it
// input records and display the frames it produces.
package app

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/config"
	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/input"
	"github.com/vovakirdan/frameloop/internal/keybind"
	"github.com/vovakirdan/frameloop/internal/registry"
	"github.com/vovakirdan/frameloop/internal/render"
)

// Options carries what the host knows that the configuration does not.
type Options struct {
	// Width and Height override the configured window size when positive.
	Width, Height int

	// Seed for world generation. 0 picks one from the clock.
	Seed int64

	Logger   *log.Logger
	Clock    frame.Clock
	Renderer *lipgloss.Renderer
}

// App is one running instance of the frame pipeline. It is not safe for
// concurrent use.
type App struct {
	cfg    config.Config
	logger *log.Logger

	input    *input.Terminal
	renderer *render.Terminal
	sched    *frame.Scheduler

	ids    []string // bottom to top
	layers map[string]frame.Layer
	tables map[string]*keybind.Table
	closed bool
}

// New builds the layer stack described by cfg. Layer packages must have
// been imported for their ids to resolve.
func New(cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if opts.Width > 0 && opts.Height > 0 {
		width, height = opts.Width, opts.Height
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		input:    input.NewTerminal(cfg.Input.ReleaseAfter),
		renderer: render.NewTerminal(opts.Renderer),
		layers:   make(map[string]frame.Layer, len(cfg.Layers)),
		tables:   make(map[string]*keybind.Table, len(cfg.Layers)),
	}
	if err := a.renderer.Init(cfg.Window.Title, width, height); err != nil {
		return nil, fmt.Errorf("app: cannot open window: %w", err)
	}
	a.sched = frame.New(frame.Config{
		MaxFrameTime: cfg.Scheduler.MaxFrameTime,
		SkipInactive: cfg.Scheduler.SkipInactive,
		Clock:        opts.Clock,
		Logger:       logger.WithPrefix("scheduler"),
	}, a.input)

	env := registry.Env{
		Runtime: core.RuntimeConfig{
			ScreenW:   width,
			ScreenH:   height,
			FrameRate: cfg.Scheduler.FrameRate,
			Seed:      seed,
		},
		Screen:   a.renderer.Screen(),
		Input:    a.input,
		Logger:   logger,
		Stats:    a.sched.Stats,
		Tick:     a.sched.Tick,
		Layer:    a.Layer,
		Bindings: a.Bindings,
	}

	for _, lc := range cfg.Layers {
		if err := a.push(lc, env); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.sched.Init()
	logger.Info("layer stack assembled",
		"layers", a.ids,
		"size", fmt.Sprintf("%dx%d", width, height),
		"seed", seed,
	)
	return a, nil
}

func (a *App) push(lc config.LayerConfig, env registry.Env) error {
	if _, dup := a.layers[lc.ID]; dup {
		return fmt.Errorf("app: layer %q listed twice", lc.ID)
	}
	l, err := registry.Create(lc.ID, env, lc.DeltaTime())
	if err != nil {
		return fmt.Errorf("app: cannot create layer: %w", err)
	}

	keys := a.cfg.Bindings[lc.ID]
	if b, ok := l.(registry.Bindable); ok {
		t, err := keybind.FromConfig(keys, b.Actions())
		if err != nil {
			return fmt.Errorf("app: cannot bind keys for %q: %w", lc.ID, err)
		}
		b.SetBindings(t)
		a.tables[lc.ID] = t
	} else if len(keys) > 0 {
		return fmt.Errorf("app: layer %q takes no key bindings", lc.ID)
	}

	if err := a.sched.AddLayer(l); err != nil {
		return fmt.Errorf("app: cannot stack layer %q: %w", lc.ID, err)
	}
	a.ids = append(a.ids, lc.ID)
	a.layers[lc.ID] = l
	return nil
}

// Feed hands a raw input record to the input source. Resizes also resize
// the window right away so the next frame draws at the new size.
func (a *App) Feed(r input.Raw) {
	if rs, ok := r.(input.Resize); ok {
		if err := a.renderer.Resize(rs.Width, rs.Height); err != nil {
			a.logger.Warn("resize ignored", "error", err)
			return
		}
	}
	a.input.Feed(r)
}

// Frame runs one iteration of the outer loop: clear, run the pipeline,
// present, and close the rate window unless a quit was requested. It
// reports whether the host should stop.
func (a *App) Frame() (quit bool) {
	if a.closed {
		return true
	}
	a.renderer.ClearWindow()
	a.sched.StartFrame()
	a.renderer.Present()
	if a.input.QuitRequested() {
		return true
	}
	a.sched.EndFrame()
	return false
}

// View returns the last presented frame.
func (a *App) View() string {
	return a.renderer.Frame()
}

// Close removes the layers from the top down and closes the window.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	for i := len(a.ids) - 1; i >= 0; i-- {
		a.sched.RemoveLayer(a.layers[a.ids[i]])
	}
	a.renderer.Quit()
	a.logger.Info("stopped", "ticks", a.sched.Tick())
}

// Layer finds a layer by id.
func (a *App) Layer(id string) (frame.Layer, bool) {
	l, ok := a.layers[id]
	return l, ok
}

// IDs returns the layer ids from top to bottom.
func (a *App) IDs() []string {
	out := make([]string, len(a.ids))
	for i, id := range a.ids {
		out[len(a.ids)-1-i] = id
	}
	return out
}

// Bindings lists every key binding, top layer first.
func (a *App) Bindings() []keybind.Binding {
	var out []keybind.Binding
	for _, id := range a.IDs() {
		if t, ok := a.tables[id]; ok {
			out = append(out, t.Bindings()...)
		}
	}
	return out
}

// LayerBindings lists the bindings of one layer, sorted by key.
func (a *App) LayerBindings(id string) []keybind.Binding {
	if t, ok := a.tables[id]; ok {
		return t.Bindings()
	}
	return nil
}

func (a *App) Scheduler() *frame.Scheduler { return a.sched }

func (a *App) Input() *input.Terminal { return a.input }

func (a *App) Config() config.Config { return a.cfg }

// FrameInterval is how often the host should call Frame.
func (a *App) FrameInterval() time.Duration { return a.cfg.FrameInterval() }
