package frame

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/event"
)

// DefaultMaxFrameTime caps the wall-clock time a single frame may feed into
// the layer accumulators.
const DefaultMaxFrameTime = 250 * time.Millisecond

// Source produces input events. Poll drains whatever input arrived since the
// last call into q.
type Source interface {
	Poll(q *event.Queue)
}

// Config controls a Scheduler.
type Config struct {
	// MaxFrameTime clamps the measured frame time. Zero selects
	// DefaultMaxFrameTime.
	MaxFrameTime time.Duration

	// SkipInactive makes the scheduler pass over layers whose Active flag is
	// false: they receive no events, updates or draws, and their
	// accumulator does not grow. When false the flag is left to the layers.
	SkipInactive bool

	// Clock defaults to SystemClock.
	Clock Clock

	// Logger defaults to a discarding logger.
	Logger *log.Logger
}

// Stats is the per-second rate snapshot taken by EndFrame.
type Stats struct {
	FPS        uint32 // frames drawn during the last full second
	TPS        uint64 // ticks executed during the last full second
	TotalTicks uint64 // ticks executed up to the last snapshot
}

// Scheduler runs the frame pipeline over its layer stack. It is not safe
// for concurrent use; every method is meant to be called from the loop that
// owns it.
type Scheduler struct {
	cfg    Config
	clock  Clock
	logger *log.Logger
	source Source

	stack Stack
	queue event.Queue

	started      bool
	lastNow      time.Time
	lastSnapshot time.Time

	frames     uint32
	ticks      uint64
	totalTicks uint64
	stats      Stats
}

// New creates a scheduler that polls src each frame. src may be nil.
func New(cfg Config, src Source) *Scheduler {
	if cfg.MaxFrameTime <= 0 {
		cfg.MaxFrameTime = DefaultMaxFrameTime
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Scheduler{
		cfg:    cfg,
		clock:  cfg.Clock,
		logger: cfg.Logger,
		source: src,
	}
}

// Init starts the frame and rate timers. StartFrame calls it on first use if
// the caller has not.
func (s *Scheduler) Init() {
	now := s.clock.Now()
	s.lastNow = now
	s.lastSnapshot = now
	s.started = true
	s.logger.Debug("scheduler started",
		"layers", s.stack.Len(),
		"max_frame_time", s.cfg.MaxFrameTime,
		"skip_inactive", s.cfg.SkipInactive,
	)
}

// AddLayer pushes l on top of the stack.
func (s *Scheduler) AddLayer(l Layer) error {
	if err := s.stack.Push(l); err != nil {
		return err
	}
	s.logger.Debug("layer added", "layer", l.Name(), "delta_time", l.DeltaTime())
	return nil
}

// RemoveLayer takes l out of the stack along with its accumulator.
func (s *Scheduler) RemoveLayer(l Layer) bool {
	return s.stack.Remove(l)
}

// Layers returns the layers from top to bottom.
func (s *Scheduler) Layers() []Layer {
	return s.stack.Layers()
}

// Queue exposes the event queue so collaborators can inject events between
// frames. Injected events are dispatched by the next StartFrame.
func (s *Scheduler) Queue() *event.Queue {
	return &s.queue
}

// StartFrame runs one iteration of the pipeline: frame hooks, input poll,
// event dispatch, fixed-step updates and draws. A panic in a layer
// propagates to the caller.
func (s *Scheduler) StartFrame() {
	if !s.started {
		s.Init()
	}

	s.stack.topDown(func(r *record) bool {
		if !s.skip(r) {
			r.layer.StartFrame()
		}
		return true
	})

	if s.source != nil {
		s.source.Poll(&s.queue)
	}
	s.dispatch()

	frameTime := s.elapsed()

	s.stack.topDown(func(r *record) bool {
		if !s.skip(r) {
			s.ticks += s.step(r, frameTime)
		}
		return true
	})

	s.stack.bottomUp(func(r *record) {
		if !s.skip(r) {
			r.layer.Draw(r.alpha)
		}
	})

	s.frames++
}

// dispatch offers each queued event to the layers top-down until one marks
// it handled, then empties the queue.
func (s *Scheduler) dispatch() {
	s.queue.Drain(func(ev event.Event) {
		s.stack.topDown(func(r *record) bool {
			if ev.Handled() {
				return false
			}
			if !s.skip(r) {
				r.layer.HandleEvent(ev)
			}
			return true
		})
	})
}

// elapsed measures the time since the previous frame, clamped to
// MaxFrameTime.
func (s *Scheduler) elapsed() time.Duration {
	now := s.clock.Now()
	frameTime := now.Sub(s.lastNow)
	s.lastNow = now

	if frameTime < 0 {
		frameTime = 0
	}
	if frameTime > s.cfg.MaxFrameTime {
		s.logger.Debug("frame time clamped", "measured", frameTime, "max", s.cfg.MaxFrameTime)
		frameTime = s.cfg.MaxFrameTime
	}
	return frameTime
}

// step feeds frameTime to one layer and returns the number of updates run.
func (s *Scheduler) step(r *record, frameTime time.Duration) uint64 {
	dt := r.layer.DeltaTime()
	if dt <= 0 {
		r.layer.Update()
		r.alpha = 0
		return 1
	}

	r.accumulator += frameTime
	var n uint64
	for r.accumulator >= dt {
		r.layer.Update()
		r.accumulator -= dt
		n++
	}
	r.alpha = float64(r.accumulator) / float64(dt)
	return n
}

func (s *Scheduler) skip(r *record) bool {
	return s.cfg.SkipInactive && !r.layer.Active()
}

// EndFrame publishes the frame and tick counters once per wall-clock second.
// The snapshot timer advances by exactly one second so rates do not drift.
func (s *Scheduler) EndFrame() {
	if !s.started {
		s.Init()
	}
	if s.clock.Now().Sub(s.lastSnapshot) < time.Second {
		return
	}

	s.totalTicks += s.ticks
	s.stats = Stats{
		FPS:        s.frames,
		TPS:        s.ticks,
		TotalTicks: s.totalTicks,
	}
	s.frames = 0
	s.ticks = 0
	s.lastSnapshot = s.lastSnapshot.Add(time.Second)

	s.logger.Debug("rates", "fps", s.stats.FPS, "tps", s.stats.TPS, "total_ticks", s.stats.TotalTicks)
}

// Tick returns the number of ticks executed since the scheduler started.
func (s *Scheduler) Tick() uint64 {
	return s.totalTicks + s.ticks
}

// Stats returns the latest per-second snapshot.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Alpha returns the interpolation fraction computed for l in the last frame.
func (s *Scheduler) Alpha(l Layer) (float64, bool) {
	r := s.stack.find(l)
	if r == nil {
		return 0, false
	}
	return r.alpha, true
}

// Accumulator returns the unconsumed time carried by l.
func (s *Scheduler) Accumulator(l Layer) (time.Duration, bool) {
	r := s.stack.find(l)
	if r == nil {
		return 0, false
	}
	return r.accumulator, true
}
