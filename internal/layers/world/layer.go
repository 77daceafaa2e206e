// Package world is the simulation layer: a scrolling Perlin terrain map
// stepped at a fixed logical rate and drawn with the camera interpolated
// between ticks.
package world

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/core"
	"github.com/vovakirdan/frameloop/internal/event"
	"github.com/vovakirdan/frameloop/internal/frame"
	"github.com/vovakirdan/frameloop/internal/keybind"
	"github.com/vovakirdan/frameloop/internal/registry"
)

// ID is the registry id of the world layer.
const ID = "world"

// TickRate is the logical update rate in Hz used when the configuration
// gives none, and TickLength the matching tick.
const (
	TickRate   = 35
	TickLength = time.Second / TickRate
)

const (
	minSpeed     = 0.25
	maxSpeed     = 8
	defaultSpeed = 1
)

func init() {
	registry.Register(ID, "World", func(env registry.Env, dt time.Duration) frame.Layer {
		return New(env, dt)
	})
}

// Layer scrolls a camera over the terrain. Movement keys latch an intent
// that the next tick consumes, so a press is never lost to a frame that
// runs no tick. Holding the right mouse button drags the view.
type Layer struct {
	frame.Base

	screen   *core.Screen
	logger   *log.Logger
	terrain  *terrain
	bindings *keybind.Table

	camX, camY   float64
	prevX, prevY float64
	moveX, moveY float64
	speed        float64

	mouseX, mouseY float64
	dragging       bool
	mouseMoved     bool
}

// New creates a world layer drawing into env.Screen. A zero dt selects
// TickLength.
func New(env registry.Env, dt time.Duration) *Layer {
	if dt <= 0 {
		dt = TickLength
	}
	return &Layer{
		Base:    frame.NewBase(ID, dt),
		screen:  env.Screen,
		logger:  env.Log().WithPrefix(ID),
		terrain: newTerrain(env.Runtime.Seed),
		speed:   defaultSpeed,
	}
}

func (l *Layer) Actions() map[string]keybind.Action {
	move := func(dx, dy float64) keybind.Action {
		return func() bool {
			l.moveX += dx
			l.moveY += dy
			return true
		}
	}
	return map[string]keybind.Action{
		"move_up":    move(0, -1),
		"move_down":  move(0, 1),
		"move_left":  move(-1, 0),
		"move_right": move(1, 0),
		"center":     l.center,
		"faster":     func() bool { return l.scaleSpeed(2) },
		"slower":     func() bool { return l.scaleSpeed(0.5) },
	}
}

func (l *Layer) SetBindings(t *keybind.Table) { l.bindings = t }

func (l *Layer) Bindings() *keybind.Table { return l.bindings }

func (l *Layer) Attach() {
	l.logger.Debug("attached", "delta_time", l.DeltaTime(), "speed", l.speed)
}

func (l *Layer) Detach() {
	l.logger.Debug("detached", "ticks", int64(l.TotalTime()/l.DeltaTime()))
}

// StartFrame resets the per-frame mouse flag.
func (l *Layer) StartFrame() {
	l.mouseMoved = false
}

func (l *Layer) HandleEvent(ev event.Event) {
	switch e := ev.(type) {
	case *event.KeyEvent:
		if l.bindings != nil {
			l.bindings.HandleKey(e)
		}

	case *event.MouseButton:
		if e.Button != event.MouseRight {
			return
		}
		switch e.Type() {
		case event.MousePressed:
			// Held buttons are reported again every poll.
			l.dragging = true
		case event.MouseReleased:
			l.dragging = false
		}
		e.SetHandled(true)

	case *event.MouseMove:
		if l.dragging {
			dx, dy := e.X-l.mouseX, e.Y-l.mouseY
			l.shift(-dx, -dy)
			l.mouseMoved = true
			e.SetHandled(true)
		}
		l.mouseX, l.mouseY = e.X, e.Y

	case *event.MouseWheel:
		if e.Y > 0 {
			l.scaleSpeed(2)
		} else if e.Y < 0 {
			l.scaleSpeed(0.5)
		}
		e.SetHandled(true)
	}
}

// Update moves the camera by the latched intent. A paused world drops
// intents instead of queueing them for later.
func (l *Layer) Update() {
	l.prevX, l.prevY = l.camX, l.camY
	moveX, moveY := l.moveX, l.moveY
	l.moveX, l.moveY = 0, 0
	if !l.Active() {
		return
	}
	l.Base.Update()
	l.camX += moveX * l.speed
	l.camY += moveY * l.speed
}

func (l *Layer) Draw(alpha float64) {
	if l.screen == nil {
		return
	}
	w, h := l.screen.Width(), l.screen.Height()
	cx, cy := l.Camera(alpha)
	ox := int(math.Floor(cx)) - w/2
	oy := int(math.Floor(cy)) - h/2

	for y := range h {
		for x := range w {
			b := l.terrain.biomeAt(ox+x, oy+y)
			l.screen.SetStyled(x, y, b.glyph, b.color)
		}
	}
	l.screen.SetStyled(w/2, h/2, '@', core.ColorBrightRed)
}

// Camera returns the camera position interpolated alpha of the way from
// the previous tick to the current one.
func (l *Layer) Camera(alpha float64) (x, y float64) {
	return core.Lerp(l.prevX, l.camX, alpha), core.Lerp(l.prevY, l.camY, alpha)
}

// Position returns the camera position as of the last tick.
func (l *Layer) Position() (x, y float64) {
	return l.camX, l.camY
}

// Biome names the terrain under the camera.
func (l *Layer) Biome() string {
	return l.terrain.biomeAt(int(math.Floor(l.camX)), int(math.Floor(l.camY))).name
}

func (l *Layer) Speed() float64 { return l.speed }

func (l *Layer) Dragging() bool { return l.dragging }

// MouseMoved reports whether a drag moved the view during this frame.
func (l *Layer) MouseMoved() bool { return l.mouseMoved }

// shift moves the camera without interpolation.
func (l *Layer) shift(dx, dy float64) {
	l.camX += dx
	l.camY += dy
	l.prevX += dx
	l.prevY += dy
}

func (l *Layer) center() bool {
	l.camX, l.camY = 0, 0
	l.prevX, l.prevY = 0, 0
	l.moveX, l.moveY = 0, 0
	return true
}

func (l *Layer) scaleSpeed(f float64) bool {
	next := core.ClampF(l.speed*f, minSpeed, maxSpeed)
	if next == l.speed {
		return false
	}
	l.speed = next
	return true
}
