package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-garage/core"
)

// Scheduler runs world ticks at a fixed interval
// Each tick: advance time, drain queued events, run systems, drain again
type Scheduler struct {
	world   *World
	clock   Clock
	timeRes *TimeResource

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time

	tickCount atomic.Uint64
	mu        sync.Mutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// tickDone receives a non-blocking signal after every tick (render sync)
	tickDone chan struct{}

	// Cached metric pointers
	statTicks  *atomic.Int64
	statEvents *atomic.Int64
}

// NewScheduler creates a scheduler with the specified tick interval
func NewScheduler(world *World, clock Clock, tickInterval time.Duration) *Scheduler {
	return &Scheduler{
		world:        world,
		clock:        clock,
		timeRes:      world.Resources.Time,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		tickDone:     make(chan struct{}, 1),
		statTicks:    world.Resources.Status.Ints.Get("engine.ticks"),
		statEvents:   world.Resources.Status.Ints.Get("engine.events"),
	}
}

// TickDone returns a channel signalled after each completed tick
func (s *Scheduler) TickDone() <-chan struct{} {
	return s.tickDone
}

// TickCount returns the number of processed ticks
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for the current tick to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	s.mu.Lock()
	s.nextTickDeadline = s.clock.Now().Add(s.tickInterval)
	s.mu.Unlock()

	timer := time.NewTimer(s.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-timer.C:
		}

		now := s.clock.Now()

		s.mu.Lock()
		deadline := s.nextTickDeadline
		s.mu.Unlock()

		if !now.Before(deadline) {
			s.Tick()

			s.mu.Lock()
			s.nextTickDeadline = s.nextTickDeadline.Add(s.tickInterval)
			// Drop missed ticks after a stall instead of bursting to catch up
			if now.Sub(s.nextTickDeadline) > s.tickInterval*2 {
				s.nextTickDeadline = now.Add(s.tickInterval)
			}
			deadline = s.nextTickDeadline
			s.mu.Unlock()
		}

		sleep := deadline.Sub(s.clock.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// Tick executes one clock cycle synchronously
// Exported for tests and for hosts that drive the world themselves
func (s *Scheduler) Tick() {
	s.world.RunSafe(func() {
		frame := s.world.AdvanceFrame()
		s.timeRes.Update(s.clock.Now(), s.tickInterval, frame)

		// Input and requests queued since the last tick
		n := s.world.DispatchEvents()

		s.world.UpdateLocked()

		// Notifications raised by systems during Update
		n += s.world.DispatchEvents()
		s.statEvents.Add(int64(n))
	})

	ticks := s.tickCount.Add(1)
	s.statTicks.Store(int64(ticks))

	select {
	case s.tickDone <- struct{}{}:
	default:
	}
}
