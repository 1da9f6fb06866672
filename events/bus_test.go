package events

import (
	"reflect"
	"testing"
	"time"

	"github.com/lixenwraith/colormix/engine"
)

type recorder struct {
	types []EventType
	seen  []EventType
}

func (r *recorder) HandleEvent(ev GameEvent) { r.seen = append(r.seen, ev.Type) }
func (r *recorder) EventTypes() []EventType  { return r.types }

func TestBusRoutesByType(t *testing.T) {
	b := NewBus(nil, nil)
	stops := &recorder{types: []EventType{EventGameStopped}}
	all := &recorder{types: AllTypes()}
	b.Register(stops)
	b.Register(all)

	b.Publish(EventRoundStarted, &RoundStartedPayload{Round: 1})
	b.Publish(EventGameStopped, nil)

	if !reflect.DeepEqual(stops.seen, []EventType{EventGameStopped}) {
		t.Errorf("stops saw %v", stops.seen)
	}
	if len(all.seen) != 2 {
		t.Errorf("all saw %v, want 2 events", all.seen)
	}
	if b.HandlerCount(EventGameStopped) != 2 {
		t.Errorf("HandlerCount = %d, want 2", b.HandlerCount(EventGameStopped))
	}
}

func TestBusNestedPublishKeepsOrder(t *testing.T) {
	b := NewBus(nil, nil)
	var order []string

	b.Register(HandlerFunc{
		Types: []EventType{EventCellsStripped},
		Fn: func(GameEvent) {
			order = append(order, "stripped")
			b.Publish(EventNoWinner, &RoundPayload{Round: 1})
			order = append(order, "stripped-done")
		},
	})
	b.Register(HandlerFunc{
		Types: []EventType{EventNoWinner},
		Fn:    func(GameEvent) { order = append(order, "no-winner") },
	})

	b.Publish(EventCellsStripped, &CellsStrippedPayload{Round: 1})
	want := []string{"stripped", "stripped-done", "no-winner"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestBusStamps(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := NewBus(func() time.Time { return at }, func() int64 { return 42 })
	var got GameEvent
	b.Register(HandlerFunc{Types: []EventType{EventGamePaused}, Fn: func(ev GameEvent) { got = ev }})
	b.Publish(EventGamePaused, &RoundPayload{Round: 2})

	if got.Tick != 42 || !got.Timestamp.Equal(at) {
		t.Errorf("stamp = %d %v", got.Tick, got.Timestamp)
	}
	if p, ok := got.Payload.(*RoundPayload); !ok || p.Round != 2 {
		t.Errorf("payload = %#v", got.Payload)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventWinnerDeclared.String() != "winner_declared" {
		t.Errorf("String = %q", EventWinnerDeclared.String())
	}
	if EventType(99).String() != "unknown" {
		t.Error("out-of-range type must be unknown")
	}
	if len(AllTypes()) != int(eventTypeCount) {
		t.Error("AllTypes length mismatch")
	}
}

func TestBusStampsTickAndTime(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	wall := engine.NewMockTimeProvider(start, engine.DefaultTickInterval)
	cs := engine.NewClockScheduler(0, nil)
	cs.BeforeTick(wall.Step)

	b := NewBus(wall.Now, cs.Now)
	var got GameEvent
	b.Register(HandlerFunc{Types: []EventType{EventGameStopped}, Fn: func(ev GameEvent) { got = ev }})

	for range 3 {
		cs.Tick()
	}
	b.Publish(EventGameStopped, nil)

	if got.Tick != 3 {
		t.Errorf("Tick = %d, want 3", got.Tick)
	}
	if want := start.Add(3 * engine.DefaultTickInterval); !got.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, want)
	}
}
