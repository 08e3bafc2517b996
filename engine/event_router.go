package engine

// @lixen: #dev{base(core)}

import "github.com/lixenwraith/farmcycle/event"

// EventRouter dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the simulation goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
	observer func(event.GameEvent)
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Observe installs a callback that sees every dispatched event before its handlers
// Used for the debug event echo
func (r *EventRouter) Observe(fn func(event.GameEvent)) {
	r.observer = fn
}

// DispatchAll consumes all pending events and routes them in FIFO order
// Returns the number of events consumed
// Events pushed by handlers are left in the queue for the next call
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		if r.observer != nil {
			r.observer(ev)
		}
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *EventRouter) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
