package system

import (
	"sort"

	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
	"github.com/lixenwraith/farmcycle/server"
)

// Publisher pushes an event to live observers; *server.Hub is the production publisher
type Publisher interface {
	Publish(kind string, frame int64, payload any)
}

// BroadcastSystem publishes frame-consistent snapshots for readers off the simulation goroutine
// and forwards lifecycle events to live observers
type BroadcastSystem struct {
	world     *engine.World
	snapshots *server.SnapshotStore
	publisher Publisher
	paused    func() bool

	dirty      bool
	sinceFlush int

	enabled bool
}

// NewBroadcastSystem creates the snapshot publisher
// publisher and paused may be nil
func NewBroadcastSystem(world *engine.World, snapshots *server.SnapshotStore, publisher Publisher, paused func() bool) engine.System {
	s := &BroadcastSystem{
		world:     world,
		snapshots: snapshots,
		publisher: publisher,
		paused:    paused,
	}
	s.Init()
	return s
}

// Init resets session state and forces a snapshot on the next frame
func (s *BroadcastSystem) Init() {
	s.dirty = true
	s.sinceFlush = 0
	s.enabled = true
}

// Name returns system's name
func (s *BroadcastSystem) Name() string {
	return "broadcast"
}

// Priority returns the system's priority
func (s *BroadcastSystem) Priority() int {
	return parameter.PriorityNetwork
}

// EventTypes returns the event types BroadcastSystem handles
func (s *BroadcastSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventNewDay,
		event.EventCropPlanted,
		event.EventCropStageChange,
		event.EventCropDrop,
		event.EventCropDespawn,
		event.EventItemCollected,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent marks the snapshot stale and forwards the event
func (s *BroadcastSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}

	s.dirty = true
	if !s.enabled || s.publisher == nil {
		return
	}
	s.publisher.Publish(event.GetEventName(ev.Type), ev.Frame, ev.Payload)
}

// Update has no per-frame work; publishing waits for the settled frame
func (s *BroadcastSystem) Update() {}

// LateUpdate publishes a snapshot when state changed or the refresh interval elapsed
func (s *BroadcastSystem) LateUpdate() {
	if !s.enabled {
		return
	}
	s.sinceFlush++
	if !s.dirty && s.sinceFlush < parameter.SnapshotRefreshFrames {
		return
	}
	s.Flush()
}

// Flush builds and publishes a snapshot immediately
func (s *BroadcastSystem) Flush() {
	s.snapshots.Publish(s.build())
	s.dirty = false
	s.sinceFlush = 0
}

func (s *BroadcastSystem) build() *server.Snapshot {
	w := s.world
	res := w.Resources

	snap := &server.Snapshot{
		Frame:       res.Time.FrameNumber,
		Day:         res.Day.Day,
		DayProgress: res.Day.Progress(),
		Inventory:   res.Inventory.Snapshot(),
		Status:      res.Status.Snapshot(),
	}
	if s.paused != nil {
		snap.Paused = s.paused()
	}

	entities := w.Components.Crop.GetAllEntities()
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
	snap.Crops = make([]server.CropView, 0, len(entities))
	for _, e := range entities {
		c, ok := w.Components.Crop.GetComponent(e)
		if !ok {
			continue
		}
		view := server.CropView{
			Entity:    e,
			CropID:    c.ID,
			Index:     c.Index,
			Stages:    len(c.Stages),
			Timer:     c.Timer,
			Status:    c.Status.Kind.String(),
			Harvested: c.Harvested,
		}
		if n, ok := w.Components.Name.GetComponent(e); ok {
			view.Name = n.Name
		}
		if tr, ok := w.Components.Transform.GetComponent(e); ok {
			view.Position = tr.Position
		}
		if m, ok := w.Components.Model.GetComponent(e); ok {
			view.Model = m.Current.Short
		}
		if f, ok := w.Components.Fruit.GetComponent(e); ok {
			view.Fruit = append(view.Fruit, f.Drops...)
		}
		snap.Crops = append(snap.Crops, view)
	}
	return snap
}
