package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/graphview/ctxlog"
	"github.com/lixenwraith/graphview/parameter"
)

// Scheduler runs the adapter on a fixed tick
// Each tick drains the inbound queue through the router, then runs systems by priority
// Tick can be driven manually; Run drives it from a ticker until the context ends
type Scheduler struct {
	world  *World
	router *Router
	clock  Clock

	tickInterval time.Duration
	lastTick     time.Time

	tickCount atomic.Uint64
	running   atomic.Bool

	afterTick []func()
}

// NewScheduler creates a scheduler routing the world's inbound queue
func NewScheduler(world *World, clock Clock, tickInterval time.Duration) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	return &Scheduler{
		world:        world,
		router:       NewRouter(world.Resources.Inbound),
		clock:        clock,
		tickInterval: tickInterval,
		lastTick:     clock.Now(),
	}
}

// Router exposes the inbound router for extra handlers and observers
func (s *Scheduler) Router() *Router {
	return s.router
}

// RegisterEventHandler adds an event handler to router, must be called before Run()
func (s *Scheduler) RegisterEventHandler(handler EventHandler) {
	s.router.Register(handler)
}

// Setup initializes every system in priority order and registers those that handle events
func (s *Scheduler) Setup() {
	for _, sys := range s.world.Systems() {
		sys.Init()
		if h, ok := sys.(EventHandler); ok {
			s.router.Register(h)
		}
	}
}

// OnTick adds a callback run after every tick, outside the world lock
func (s *Scheduler) OnTick(fn func()) {
	s.afterTick = append(s.afterTick, fn)
}

// Tick performs one drain-then-update cycle and returns the number of dispatched events
func (s *Scheduler) Tick() int {
	now := s.clock.Now()
	dt := now.Sub(s.lastTick)
	s.lastTick = now

	dispatched := 0
	s.world.RunSafe(func() {
		s.world.Resources.Time.Update(now, dt)
		dispatched = s.drainLocked()
		s.world.UpdateLocked()
	})

	s.tickCount.Add(1)

	for _, fn := range s.afterTick {
		fn()
	}
	return dispatched
}

// Drain dispatches pending inbound events without running systems or tick callbacks
// Producers call it to keep a large burst from overrunning the ring; never call it under the world lock
func (s *Scheduler) Drain() int {
	dispatched := 0
	s.world.RunSafe(func() {
		dispatched = s.drainLocked()
	})
	return dispatched
}

// drainLocked runs bounded dispatch passes; handlers may emit feedback events that land in a later pass
func (s *Scheduler) drainLocked() int {
	dispatched := 0
	for i := 0; i < parameter.DrainIterations; i++ {
		n := s.router.DispatchAll()
		dispatched += n
		if n == 0 {
			break
		}
	}
	return dispatched
}

// TickCount returns the number of completed ticks
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// Run ticks until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	defer s.running.Store(false)

	log := ctxlog.FromContext(ctx)
	log.Debug("scheduler started", "tick", s.tickInterval)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("scheduler stopped", "ticks", s.tickCount.Load())
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}
