// Package frame drives simulation and presentation at independent rates.
//
// A Scheduler owns an ordered stack of layers. Every frame it polls input,
// dispatches the resulting events from the top layer down, feeds each
// layer's accumulator with the elapsed wall-clock time, runs as many fixed
// ticks as the accumulator allows, and finally draws every layer from the
// bottom up with the fraction of a tick left over.
package frame

import (
	"time"

	"github.com/vovakirdan/frameloop/internal/event"
)

// DefaultDeltaTime is a 50Hz tick, for layers with no particular rate in
// mind.
const DefaultDeltaTime = 20 * time.Millisecond

// Layer is a unit of simulation and presentation state with its own tick
// interval. A DeltaTime of zero means the layer updates once per frame.
type Layer interface {
	// Name identifies the layer in logs.
	Name() string

	// Update advances the layer by one tick.
	Update()

	// Draw presents the layer. alpha in [0, 1) is the fraction of the next
	// tick that has already elapsed.
	Draw(alpha float64)

	// HandleEvent inspects an event and may mark it handled to stop it
	// reaching lower layers.
	HandleEvent(ev event.Event)

	// StartFrame runs before input is polled, to reset per-frame state.
	StartFrame()

	DeltaTime() time.Duration
	Active() bool
	SetActive(active bool)
}

// Attacher is implemented by layers that want to know when they join a
// stack.
type Attacher interface {
	Attach()
}

// Detacher is implemented by layers that want to know when they leave a
// stack.
type Detacher interface {
	Detach()
}

// Base implements Layer with default behavior. Embed it and override the
// hooks a layer needs.
type Base struct {
	name      string
	deltaTime time.Duration
	totalTime time.Duration
	active    bool
}

// NewBase creates an active base layer. Negative tick lengths are treated
// as zero.
func NewBase(name string, deltaTime time.Duration) Base {
	if deltaTime < 0 {
		deltaTime = 0
	}
	return Base{name: name, deltaTime: deltaTime, active: true}
}

func (b *Base) Name() string { return b.name }

// Update advances TotalTime by one tick.
func (b *Base) Update() { b.totalTime += b.deltaTime }

func (b *Base) Draw(alpha float64)         {}
func (b *Base) HandleEvent(ev event.Event) {}
func (b *Base) StartFrame()                {}

func (b *Base) DeltaTime() time.Duration { return b.deltaTime }

// TotalTime is the sum of DeltaTime over every Update call.
func (b *Base) TotalTime() time.Duration { return b.totalTime }

func (b *Base) Active() bool          { return b.active }
func (b *Base) SetActive(active bool) { b.active = active }
