package system

import (
	"sync/atomic"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/journal"
	"github.com/lixenwraith/farmcycle/parameter"
)

// Recorder accepts journal entries without blocking; *journal.Writer is the production recorder
type Recorder interface {
	Record(e journal.Entry, payload any) bool
}

// JournalSystem records lifecycle events with the day and frame they happened on
type JournalSystem struct {
	world    *engine.World
	recorder Recorder

	statRecorded *atomic.Int64
	statDropped  *atomic.Int64

	enabled bool
}

// NewJournalSystem creates the journal system; a nil recorder leaves it inert
func NewJournalSystem(world *engine.World, recorder Recorder) engine.System {
	reg := world.Resources.Status
	s := &JournalSystem{
		world:        world,
		recorder:     recorder,
		statRecorded: reg.Ints.Get("journal.recorded"),
		statDropped:  reg.Ints.Get("journal.dropped"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *JournalSystem) Init() {
	s.enabled = s.recorder != nil
}

// Name returns system's name
func (s *JournalSystem) Name() string {
	return "journal"
}

// Priority returns the system's priority
func (s *JournalSystem) Priority() int {
	return parameter.PriorityJournal
}

// EventTypes returns the event types JournalSystem handles
func (s *JournalSystem) EventTypes() []event.EventType {
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

// HandleEvent records one lifecycle event
func (s *JournalSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled && s.recorder != nil
			}
		}
		return
	}

	if !s.enabled {
		return
	}

	entry := journal.Entry{
		Frame: ev.Frame,
		Day:   s.world.Resources.Day.Day,
		Kind:  event.GetEventName(ev.Type),
	}
	entry.Entity, entry.CropID = subject(ev.Payload)

	if s.recorder.Record(entry, ev.Payload) {
		s.statRecorded.Add(1)
	} else {
		s.statDropped.Add(1)
	}
}

// Update has no per-frame work
func (s *JournalSystem) Update() {}

// subject extracts the crop entity and id an event is about
func subject(payload any) (core.Entity, string) {
	switch p := payload.(type) {
	case *event.CropPlantedPayload:
		return p.Entity, p.CropID
	case *event.CropStageChangePayload:
		return p.Entity, p.CropID
	case *event.CropDropPayload:
		return p.Entity, p.CropID
	case *event.CropDespawnPayload:
		return p.Entity, p.CropID
	case *event.ItemCollectedPayload:
		return p.Source, ""
	}
	return 0, ""
}
