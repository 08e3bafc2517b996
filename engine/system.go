package engine

import "github.com/lixenwraith/farmcycle/event"

// EventHandler processes specific event types
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously on the simulation goroutine during dispatch
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// System is a per-frame simulation step that also receives routed events
type System interface {
	EventHandler

	// Name is the key used by EventMetaSystemCommandRequest
	Name() string

	// Priority orders Update calls; lower values run first
	Priority() int

	// Update runs once per frame after pending events are dispatched
	Update()
}

// LateUpdater is implemented by systems that read the frame after events have settled
type LateUpdater interface {
	LateUpdate()
}
