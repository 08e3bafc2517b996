package system

// @lixen: #dev{feature[drop(system)]}

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
)

// DropSystem resolves drop lists: each amount is sampled from its range and credited to the inventory
type DropSystem struct {
	world *engine.World

	statItems *atomic.Int64

	enabled bool
}

// NewDropSystem creates the drop resolution system
func NewDropSystem(world *engine.World) engine.System {
	s := &DropSystem{
		world:     world,
		statItems: world.Resources.Status.Ints.Get("inventory.items"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *DropSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *DropSystem) Name() string {
	return "drop"
}

// Priority returns the system's priority
func (s *DropSystem) Priority() int {
	return parameter.PriorityDrop
}

// EventTypes returns the event types DropSystem handles
func (s *DropSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCropDrop,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent resolves a drop list
func (s *DropSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}

	if !s.enabled {
		return
	}

	if ev.Type != event.EventCropDrop {
		return
	}
	payload, ok := ev.Payload.(*event.CropDropPayload)
	if !ok {
		return
	}

	res := s.world.Resources
	for _, d := range payload.Drops {
		amount := d.Amount.Get(res.Rand)
		if amount == 0 {
			continue
		}
		total := res.Inventory.Add(d.Item, amount)
		s.statItems.Add(int64(amount))
		log.Printf("[INFO] collected %d %s from %s (total %d)", amount, d.Item, payload.CropID, total)
		s.world.PushEvent(event.EventItemCollected, &event.ItemCollectedPayload{
			Source: payload.Entity, Item: d.Item, Amount: amount, Total: total,
		})
	}
}

// Update has no per-frame work
func (s *DropSystem) Update() {}
