package events

import "time"

// Handler processes specific event types
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously on the tick goroutine
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (h HandlerFunc) HandleEvent(ev GameEvent) { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []EventType  { return h.Types }

// Bus dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded: Publish is only called from the tick goroutine
//   - Handlers are invoked in registration order
//   - Events published by a handler are queued and dispatched after the current one, keeping FIFO order
type Bus struct {
	handlers    map[EventType][]Handler
	pending     []GameEvent
	dispatching bool

	now   func() time.Time
	frame func() int64
}

// NewBus creates a bus; nil now uses time.Now, nil frame stamps tick 0
func NewBus(now func() time.Time, frame func() int64) *Bus {
	if now == nil {
		now = time.Now
	}
	if frame == nil {
		frame = func() int64 { return 0 }
	}
	return &Bus{
		handlers: make(map[EventType][]Handler),
		now:      now,
		frame:    frame,
	}
}

// Register adds a handler for its declared event types
func (b *Bus) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

// Publish stamps and dispatches an event
func (b *Bus) Publish(t EventType, payload any) {
	b.pending = append(b.pending, GameEvent{
		Type:      t,
		Payload:   payload,
		Tick:      b.frame(),
		Timestamp: b.now(),
	})
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()
	for len(b.pending) > 0 {
		ev := b.pending[0]
		b.pending = b.pending[1:]
		for _, h := range b.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}
