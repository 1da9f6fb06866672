// Package engine runs the single-writer tick loop: a fixed-interval clock,
// a timer table keyed by kind, and a mailbox that marshals outside
// requests onto the tick goroutine.
package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/colormix/core"
	"github.com/lixenwraith/colormix/logger"
	"github.com/lixenwraith/colormix/status"
)

// TicksPerSecond is the nominal tick rate at the default interval
const TicksPerSecond = 20

// DefaultTickInterval is 1/TicksPerSecond
const DefaultTickInterval = time.Second / TicksPerSecond

// ErrStopped is returned by Do once the scheduler has been stopped
var ErrStopped = errors.New("clock scheduler stopped")

// TimerKey names a timer kind; scheduling a key replaces the previous timer with it
type TimerKey string

type timer struct {
	key    TimerKey
	due    int64
	period int64
	seq    uint64
	fn     func()
}

// TickHook runs once per tick with the new tick number
type TickHook func(tick int64)

// ClockScheduler owns the tick goroutine
// Schedule, Cancel, Active and Now must only be called from that goroutine:
// inside a timer callback, a hook, or a function passed to Do/Submit
type ClockScheduler struct {
	// Serializes tick execution against inline Do when the loop is not running
	mu sync.Mutex

	now    int64
	seq    uint64
	timers map[TimerKey]*timer

	beforeTick []TickHook
	afterTick  []TickHook

	tickInterval time.Duration
	inbox        chan func()

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	stopped  atomic.Bool

	statTicks  *atomic.Int64
	statTimers *atomic.Int64
}

// NewClockScheduler creates a scheduler; reg may be nil
func NewClockScheduler(tickInterval time.Duration, reg *status.Registry) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &ClockScheduler{
		timers:       make(map[TimerKey]*timer),
		tickInterval: tickInterval,
		inbox:        make(chan func(), 64),
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get("engine.ticks"),
		statTimers:   reg.Ints.Get("engine.timers"),
	}
}

// TickInterval returns the wall-clock length of one tick
func (cs *ClockScheduler) TickInterval() time.Duration {
	return cs.tickInterval
}

// BeforeTick adds a hook that runs before due timers, must be called before Start()
func (cs *ClockScheduler) BeforeTick(h TickHook) {
	cs.beforeTick = append(cs.beforeTick, h)
}

// AfterTick adds a hook that runs after due timers, must be called before Start()
func (cs *ClockScheduler) AfterTick(h TickHook) {
	cs.afterTick = append(cs.afterTick, h)
}

// Now returns the current tick number
func (cs *ClockScheduler) Now() int64 {
	return cs.now
}

// Schedule installs fn under key, cancelling any timer already holding that key
// fn first runs delay ticks from now (at least one, never within the current tick),
// then every period ticks when period > 0
func (cs *ClockScheduler) Schedule(key TimerKey, delay, period int64, fn func()) {
	cs.Cancel(key)
	if delay < 1 {
		delay = 1
	}
	cs.seq++
	cs.timers[key] = &timer{
		key:    key,
		due:    cs.now + delay,
		period: period,
		seq:    cs.seq,
		fn:     fn,
	}
	cs.statTimers.Store(int64(len(cs.timers)))
}

// Cancel removes the timer under key; reports whether one existed
func (cs *ClockScheduler) Cancel(key TimerKey) bool {
	if _, ok := cs.timers[key]; !ok {
		return false
	}
	delete(cs.timers, key)
	cs.statTimers.Store(int64(len(cs.timers)))
	return true
}

// Active reports whether a timer is installed under key
func (cs *ClockScheduler) Active(key TimerKey) bool {
	_, ok := cs.timers[key]
	return ok
}

// Tick advances the clock by one tick and runs hooks and due timers
// Exported for manual driving in tests and headless stepping
func (cs *ClockScheduler) Tick() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.tick()
}

func (cs *ClockScheduler) tick() {
	cs.now++
	now := cs.now

	for _, h := range cs.beforeTick {
		h(now)
	}

	var due []*timer
	for _, t := range cs.timers {
		if t.due <= now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	for _, t := range due {
		// Cancelled or replaced by an earlier callback in this tick
		if cs.timers[t.key] != t {
			continue
		}
		if t.period > 0 {
			t.due = now + t.period
		} else {
			delete(cs.timers, t.key)
		}
		t.fn()
	}
	cs.statTimers.Store(int64(len(cs.timers)))

	for _, h := range cs.afterTick {
		h(now)
	}

	cs.statTicks.Add(1)
}

// Submit queues fn to run on the tick goroutine without waiting
// Runs inline when the loop is not running
func (cs *ClockScheduler) Submit(fn func()) {
	if !cs.running.Load() {
		cs.mu.Lock()
		fn()
		cs.mu.Unlock()
		return
	}
	select {
	case cs.inbox <- fn:
	case <-cs.stopChan:
	}
}

// Do runs fn on the tick goroutine and waits for it to finish
// Must not be called from the tick goroutine itself
func (cs *ClockScheduler) Do(ctx context.Context, fn func()) error {
	if cs.stopped.Load() {
		return ErrStopped
	}
	if !cs.running.Load() {
		cs.mu.Lock()
		defer cs.mu.Unlock()
		fn()
		return nil
	}

	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}

	select {
	case cs.inbox <- task:
	case <-ctx.Done():
		return ctx.Err()
	case <-cs.stopChan:
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-cs.stopChan:
		return ErrStopped
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.stopped.Load() {
		return
	}
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
		logger.Debug("clock scheduler started", "interval", cs.tickInterval)
	}
}

// Stop halts the scheduler loop and waits for it to exit
// Pending timers are kept; tasks still queued are dropped
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		cs.stopped.Store(true)
		close(cs.stopChan)
		if cs.running.CompareAndSwap(true, false) {
			cs.wg.Wait()
		}
		logger.Debug("clock scheduler stopped", "ticks", cs.statTicks.Load())
	})
}

// schedulerLoop ticks on a drift-corrected deadline and drains the inbox between ticks
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	nextDeadline := time.Now().Add(cs.tickInterval)
	wake := time.NewTimer(cs.tickInterval)
	defer wake.Stop()

	for {
		select {
		case <-cs.stopChan:
			return

		case fn := <-cs.inbox:
			cs.mu.Lock()
			fn()
			cs.mu.Unlock()

		case <-wake.C:
			cs.mu.Lock()
			cs.tick()
			cs.mu.Unlock()

			now := time.Now()
			nextDeadline = nextDeadline.Add(cs.tickInterval)
			// Fell too far behind: resync instead of bursting
			if now.Sub(nextDeadline) > cs.tickInterval*2 {
				nextDeadline = now.Add(cs.tickInterval)
			}
			sleep := nextDeadline.Sub(now)
			if sleep < 0 {
				sleep = 0
			}
			wake.Reset(sleep)
		}
	}
}
