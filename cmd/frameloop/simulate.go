package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/app"
	"github.com/vovakirdan/frameloop/internal/frame"
)

var (
	flagTick     time.Duration
	flagFrame    []time.Duration
	flagFrames   int
	flagMaxFrame time.Duration
	flagStack    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Print the accumulator walk for a tick and frame time",
	Long: `Runs the scheduler against a manual clock and prints, for each frame,
how many ticks ran, what was left in the accumulator and the draw alpha.

Frame times cycle through the --frame list and are clamped to
--max-frame-time. With --stack the configured layer stack runs instead of
a single probe layer, and the last frame is printed.

Examples:
  frameloop simulate --tick 20ms --frame 25ms --frames 4
  frameloop simulate --tick 10ms --frame 1s
  frameloop simulate --frame 16ms,33ms --frames 10
  frameloop simulate --stack --frames 120`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagTick, "tick", frame.DefaultDeltaTime, "Tick length of the probe layer (0 = every frame)")
	simulateCmd.Flags().DurationSliceVar(&flagFrame, "frame", []time.Duration{25 * time.Millisecond}, "Frame times, cycled")
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 8, "Number of frames to run")
	simulateCmd.Flags().DurationVar(&flagMaxFrame, "max-frame-time", frame.DefaultMaxFrameTime, "Frame time clamp")
	simulateCmd.Flags().BoolVar(&flagStack, "stack", false, "Run the configured layer stack")
}

// probe counts its updates.
type probe struct {
	frame.Base
	updates int
}

func (p *probe) Update() {
	p.Base.Update()
	p.updates++
}

func runSimulate(_ *cobra.Command, _ []string) {
	if len(flagFrame) == 0 || flagFrames <= 0 {
		fatal("need at least one --frame and a positive --frames")
	}
	logger, closeLog, err := newLogger(io.Discard, "simulate")
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	clock := frame.NewManualClock(time.Unix(0, 0))
	if flagStack {
		simulateStack(clock, logger)
		return
	}

	sched := frame.New(frame.Config{
		MaxFrameTime: flagMaxFrame,
		Clock:        clock,
		Logger:       logger,
	}, nil)
	p := &probe{Base: frame.NewBase("probe", flagTick)}
	if err := sched.AddLayer(p); err != nil {
		fatal("%v", err)
	}
	sched.Init()

	fmt.Printf("  %-5s  %-10s  %-5s  %-12s  %s\n", "Frame", "Elapsed", "Ticks", "Accumulator", "Alpha")
	fmt.Printf("  %-5s  %-10s  %-5s  %-12s  %s\n", "-----", "-------", "-----", "-----------", "-----")
	for i := range flagFrames {
		ft := flagFrame[i%len(flagFrame)]
		clock.Advance(ft)

		before := p.updates
		sched.StartFrame()
		sched.EndFrame()

		acc, _ := sched.Accumulator(p)
		alpha, _ := sched.Alpha(p)
		fmt.Printf("  %-5d  %-10s  %-5d  %-12s  %.3f\n", i+1, ft, p.updates-before, acc, alpha)
	}

	st := sched.Stats()
	fmt.Println()
	fmt.Printf("Ticks: %d  Logical time: %s\n", sched.Tick(), p.TotalTime())
	fmt.Printf("Last snapshot: fps %d  tps %d  total %d\n", st.FPS, st.TPS, st.TotalTicks)
}

func simulateStack(clock *frame.ManualClock, logger *log.Logger) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	cfg.Scheduler.MaxFrameTime = flagMaxFrame

	a, err := app.New(cfg, app.Options{
		Seed:     flagSeed,
		Logger:   logger,
		Clock:    clock,
		Renderer: lipgloss.NewRenderer(io.Discard),
	})
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	for i := range flagFrames {
		clock.Advance(flagFrame[i%len(flagFrame)])
		if a.Frame() {
			break
		}
	}

	fmt.Println(a.View())
	st := a.Scheduler().Stats()
	fmt.Printf("\nTicks: %d  Last snapshot: fps %d  tps %d\n", a.Scheduler().Tick(), st.FPS, st.TPS)
}
