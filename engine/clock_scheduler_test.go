package engine

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/colormix/status"
)

func TestScheduleNeverRunsInSameTick(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	var ran []int64

	cs.Schedule("a", 0, 0, func() {
		ran = append(ran, cs.Now())
		// Scheduled from inside a tick: must wait for the next one
		cs.Schedule("b", 0, 0, func() { ran = append(ran, cs.Now()) })
	})

	cs.Tick()
	if !reflect.DeepEqual(ran, []int64{1}) {
		t.Fatalf("after tick 1 ran = %v, want [1]", ran)
	}
	cs.Tick()
	if !reflect.DeepEqual(ran, []int64{1, 2}) {
		t.Errorf("after tick 2 ran = %v, want [1 2]", ran)
	}
}

func TestRepeatingTimer(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	var at []int64
	cs.Schedule("rep", 1, 20, func() { at = append(at, cs.Now()) })

	for range 45 {
		cs.Tick()
	}
	want := []int64{1, 21, 41}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("runs = %v, want %v", at, want)
	}
	if !cs.Active("rep") {
		t.Error("repeating timer must stay active")
	}
}

func TestScheduleReplacesSameKey(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	var first, second int
	cs.Schedule("k", 1, 1, func() { first++ })
	cs.Schedule("k", 1, 1, func() { second++ })

	cs.Tick()
	cs.Tick()
	if first != 0 || second != 2 {
		t.Errorf("first=%d second=%d, want 0 and 2", first, second)
	}
}

func TestCancelFromCallback(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	var a, b int
	// a runs first (lower seq) and cancels b in the same tick
	cs.Schedule("a", 1, 0, func() {
		a++
		cs.Cancel("b")
	})
	cs.Schedule("b", 1, 0, func() { b++ })

	cs.Tick()
	if a != 1 || b != 0 {
		t.Errorf("a=%d b=%d, want 1 and 0", a, b)
	}
	if cs.Active("a") || cs.Active("b") {
		t.Error("no timers should remain")
	}
}

func TestRepeatingTimerCancelsItself(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	n := 0
	cs.Schedule("self", 1, 1, func() {
		n++
		if n == 3 {
			cs.Cancel("self")
		}
	})
	for range 10 {
		cs.Tick()
	}
	if n != 3 {
		t.Errorf("runs = %d, want 3", n)
	}
}

func TestHooksOrder(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	var order []string
	cs.BeforeTick(func(int64) { order = append(order, "before") })
	cs.AfterTick(func(int64) { order = append(order, "after") })
	cs.Schedule("t", 1, 0, func() { order = append(order, "timer") })

	cs.Tick()
	want := []string{"before", "timer", "after"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestTickMetric(t *testing.T) {
	reg := status.NewRegistry()
	cs := NewClockScheduler(0, reg)
	cs.Schedule("x", 5, 0, func() {})
	cs.Tick()
	cs.Tick()
	if got := reg.Ints.Get("engine.ticks").Load(); got != 2 {
		t.Errorf("engine.ticks = %d, want 2", got)
	}
	if got := reg.Ints.Get("engine.timers").Load(); got != 1 {
		t.Errorf("engine.timers = %d, want 1", got)
	}
}

func TestDoInlineWhenNotRunning(t *testing.T) {
	cs := NewClockScheduler(0, nil)
	ran := false
	if err := cs.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Error("Do did not run fn inline")
	}
}

func TestRunningLoop(t *testing.T) {
	cs := NewClockScheduler(time.Millisecond, nil)
	var fired atomic.Int32
	cs.Start()
	defer cs.Stop()

	err := cs.Do(context.Background(), func() {
		cs.Schedule("tick", 1, 1, func() { fired.Add(1) })
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if fired.Load() < 3 {
		t.Fatalf("timer fired %d times, want >= 3", fired.Load())
	}

	done := make(chan struct{})
	cs.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("submitted task never ran")
	}
}

func TestDoAfterStop(t *testing.T) {
	cs := NewClockScheduler(time.Millisecond, nil)
	cs.Start()
	cs.Stop()
	cs.Stop()
	if err := cs.Do(context.Background(), func() {}); err != ErrStopped {
		t.Errorf("Do after Stop = %v, want ErrStopped", err)
	}
}

func TestMockTimeProviderStep(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMockTimeProvider(start, DefaultTickInterval)
	cs := NewClockScheduler(0, nil)
	cs.BeforeTick(m.Step)
	for range TicksPerSecond {
		cs.Tick()
	}
	if got := m.Now().Sub(start); got != time.Second {
		t.Errorf("elapsed = %v, want 1s", got)
	}
}

func TestServiceLifecycle(t *testing.T) {
	cs := NewClockScheduler(time.Millisecond, nil)
	svc := NewService(cs, "render", "audio")
	if svc.Name() != "engine" || !reflect.DeepEqual(svc.Dependencies(), []string{"render", "audio"}) {
		t.Fatalf("name=%q deps=%v", svc.Name(), svc.Dependencies())
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	var ran atomic.Bool
	if err := cs.Do(context.Background(), func() { ran.Store(true) }); err != nil || !ran.Load() {
		t.Fatalf("Do on running service: err=%v ran=%v", err, ran.Load())
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := cs.Do(context.Background(), func() {}); err != ErrStopped {
		t.Errorf("Do after Stop = %v, want ErrStopped", err)
	}
}
