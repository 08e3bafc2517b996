package engine

// @lixen: #dev{base(core)}

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/farmcycle/parameter"
)

// ClockScheduler steps the world once per frame on the simulation goroutine
// Frame order: route pending events, run system updates, settle events emitted
// during the frame for up to EventLoopIterations passes, then run late updates
type ClockScheduler struct {
	world  *World
	router *EventRouter
	clock  *PausableClock

	tickInterval time.Duration
	lastTick     time.Time
	frame        int64

	afterFrame func()

	// Cached metric pointers
	statFrames  *atomic.Int64
	statEvents  *atomic.Int64
	statOverrun *atomic.Int64
	statLost    *atomic.Int64
	statPaused  *atomic.Bool
}

// NewClockScheduler creates a scheduler and registers every world system with its router
// Systems must be added to the world before this call
func NewClockScheduler(world *World, clock *PausableClock, tickInterval time.Duration) *ClockScheduler {
	reg := world.Resources.Status
	cs := &ClockScheduler{
		world:        world,
		router:       NewEventRouter(world.Resources.Event.Queue),
		clock:        clock,
		tickInterval: tickInterval,
		lastTick:     clock.Now(),
		statFrames:   reg.Ints.Get("engine.frames"),
		statEvents:   reg.Ints.Get("engine.events"),
		statOverrun:  reg.Ints.Get("engine.settle_overrun"),
		statLost:     reg.Ints.Get("engine.events_lost"),
		statPaused:   reg.Bools.Get("engine.paused"),
	}
	for _, s := range world.Systems() {
		cs.router.Register(s)
	}
	return cs
}

// Router exposes the event router for extra handlers and the debug observer
func (cs *ClockScheduler) Router() *EventRouter {
	return cs.router
}

// AfterFrame installs a hook run at the end of every frame on the simulation goroutine
func (cs *ClockScheduler) AfterFrame(fn func()) {
	cs.afterFrame = fn
}

// Pause freezes game time; manual day triggers are still processed
func (cs *ClockScheduler) Pause() {
	cs.clock.Pause()
	cs.statPaused.Store(true)
}

// Resume continues game time
func (cs *ClockScheduler) Resume() {
	cs.clock.Resume()
	cs.statPaused.Store(false)
}

// TogglePause flips pause state and returns the new state
func (cs *ClockScheduler) TogglePause() bool {
	paused := cs.clock.Toggle()
	cs.statPaused.Store(paused)
	return paused
}

// IsPaused returns current pause state
func (cs *ClockScheduler) IsPaused() bool {
	return cs.clock.IsPaused()
}

// Frame returns the number of frames stepped
func (cs *ClockScheduler) Frame() int64 {
	return cs.frame
}

// Step advances the simulation by one frame of dt
// dt is clamped to MaxFrameDelta and forced to zero while paused
func (cs *ClockScheduler) Step(dt time.Duration) {
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	if dt < 0 || cs.clock.IsPaused() {
		dt = 0
	}

	cs.frame++
	cs.world.Resources.Time.Update(cs.clock.Now(), dt, cs.frame)

	consumed := cs.router.DispatchAll()
	cs.world.Update()

	settled := false
	for i := 0; i < parameter.EventLoopIterations; i++ {
		n := cs.router.DispatchAll()
		consumed += n
		if n == 0 {
			settled = true
			break
		}
	}
	if !settled {
		// Remaining events roll over to the next frame
		cs.statOverrun.Add(1)
	}

	for _, s := range cs.world.Systems() {
		if late, ok := s.(LateUpdater); ok {
			late.LateUpdate()
		}
	}

	cs.statFrames.Store(cs.frame)
	cs.statEvents.Add(int64(consumed))
	cs.statLost.Store(int64(cs.world.Resources.Event.Queue.Overwritten()))

	if cs.afterFrame != nil {
		cs.afterFrame()
	}
}

// Run steps frames on a fixed ticker until ctx is cancelled
// Delta is measured on the pausable clock so paused frames carry no game time
func (cs *ClockScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(cs.tickInterval)
	defer ticker.Stop()

	cs.lastTick = cs.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := cs.clock.Now()
			dt := now.Sub(cs.lastTick)
			cs.lastTick = now
			cs.Step(dt)
		}
	}
}
