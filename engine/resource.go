package engine

import (
	"time"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/physics"
	"github.com/lixenwraith/farmcycle/status"
)

// Resource holds singleton game resources, built once by the host and reached via World.Resources
type Resource struct {
	// World Resource
	Time  *TimeResource
	Event *EventQueueResource
	Rand  *RandomResource
	Day   *DayResource

	// Content
	Library *crop.Library
	Assets  asset.Loader

	// Collaborators
	Colliders physics.Colliders
	Inventory *InventoryResource

	// Telemetry
	Status *status.Registry
}

// NewResource builds a bundle with fresh time, queue, rng, day, inventory and status resources
// Library, Assets and Colliders are supplied by the caller
func NewResource(seed int64, library *crop.Library, assets asset.Loader, colliders physics.Colliders) *Resource {
	return &Resource{
		Time:      &TimeResource{},
		Event:     &EventQueueResource{Queue: event.NewEventQueue()},
		Rand:      NewRandomResource(seed),
		Day:       &DayResource{},
		Library:   library,
		Assets:    assets,
		Colliders: colliders,
		Inventory: NewInventoryResource(),
		Status:    status.NewRegistry(),
	}
}

// TimeResource wraps time data for systems
// Updated by the ClockScheduler at the start of a frame
type TimeResource struct {
	// GameTime is the current time in the game world (affected by pause)
	GameTime time.Time

	// DeltaTime is the duration since the last update, zero while paused
	DeltaTime time.Duration

	// FrameNumber is the current frame count
	FrameNumber int64
}

// Update modifies TimeResource fields in place
func (tr *TimeResource) Update(gameTime time.Time, deltaTime time.Duration, frameNumber int64) {
	tr.GameTime = gameTime
	tr.DeltaTime = deltaTime
	tr.FrameNumber = frameNumber
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}

// DayResource exposes the day clock state to readers outside the day system
type DayResource struct {
	Day       int
	Remaining time.Duration
	Length    time.Duration
}

// Progress returns the elapsed fraction of the current day in [0, 1]
func (d *DayResource) Progress() float64 {
	if d.Length <= 0 {
		return 0
	}
	p := 1 - float64(d.Remaining)/float64(d.Length)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
