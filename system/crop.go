package system

// @lixen: #dev{feature[crop(system)],feature[drop(system)]}

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/farmcycle/component"
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
	"github.com/lixenwraith/farmcycle/status"
)

// CropSystem plants crops and runs stage advancement once per crop per new day
// Instances are processed sequentially; each one's transition completes before the next starts
type CropSystem struct {
	world *engine.World

	statAlive      *atomic.Int64
	statPlanted    *atomic.Int64
	statDespawned  *atomic.Int64
	statStageMoves *atomic.Int64
	statLoadErrors *atomic.Int64
	statLastStage  *status.AtomicString

	enabled bool
}

// NewCropSystem creates the crop lifecycle system
func NewCropSystem(world *engine.World) engine.System {
	reg := world.Resources.Status
	s := &CropSystem{
		world:          world,
		statAlive:      reg.Ints.Get("crop.alive"),
		statPlanted:    reg.Ints.Get("crop.planted"),
		statDespawned:  reg.Ints.Get("crop.despawned"),
		statStageMoves: reg.Ints.Get("crop.stage_changes"),
		statLoadErrors: reg.Ints.Get("crop.load_errors"),
		statLastStage:  reg.Strings.Get("crop.last_stage"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *CropSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *CropSystem) Name() string {
	return "crop"
}

// Priority returns the system's priority
func (s *CropSystem) Priority() int {
	return parameter.PriorityCrop
}

// EventTypes returns the event types CropSystem handles
func (s *CropSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventNewDay,
		event.EventCropPlantRequest,
		event.EventCropHarvestRequest,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent processes day ticks, planting and harvest requests
func (s *CropSystem) HandleEvent(ev event.GameEvent) {
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

	switch ev.Type {
	case event.EventNewDay:
		for _, e := range s.world.Components.Crop.GetAllEntities() {
			s.Advance(e)
		}

	case event.EventCropPlantRequest:
		if payload, ok := ev.Payload.(*event.CropPlantRequestPayload); ok {
			s.plantByID(payload.CropID, payload.Position)
		}

	case event.EventCropHarvestRequest:
		if payload, ok := ev.Payload.(*event.CropHarvestRequestPayload); ok {
			s.Harvest(payload.Entity)
		}
	}
}

// Update has no per-frame work; crops only change on day ticks
func (s *CropSystem) Update() {}

func (s *CropSystem) plantByID(id string, pos core.Vec3) {
	def, err := s.world.Resources.Library.Get(id)
	if err != nil {
		s.statLoadErrors.Add(1)
		log.Printf("[ERROR] planting aborted: %v", err)
		return
	}
	if _, err := s.Plant(def, pos); err != nil {
		log.Printf("[ERROR] planting %q aborted: %v", id, err)
	}
}

// Plant creates an instance of def at pos and applies stage 0
// Returns crop.ErrEmptyStages without creating an entity when def has no stages
func (s *CropSystem) Plant(def *crop.Definition, pos core.Vec3) (core.Entity, error) {
	c, err := component.NewCropComponent(def)
	if err != nil {
		return 0, err
	}

	w := s.world
	e := w.CreateEntity()
	name := fmt.Sprintf("%s - %.1f,%.1f", def.ID, pos.X, pos.Z)
	w.Components.Transform.SetComponent(e, component.TransformComponent{Position: pos, Scale: parameter.CropScale})
	w.Components.Name.SetComponent(e, component.NameComponent{Name: name})
	w.Components.Model.SetComponent(e, component.ModelComponent{})

	stage := c.Stages[0]
	if stage.BeginStatus != nil {
		c.Status = stage.BeginStatus.Clone()
	}
	c.Timer = stage.Duration.Get(w.Resources.Rand)
	RequestModel(w, e, stage.Model)

	s.statPlanted.Add(1)
	s.statAlive.Add(1)
	w.PushEvent(event.EventCropPlanted, &event.CropPlantedPayload{
		Entity: e, CropID: c.ID, Name: name, Position: pos,
	})

	switch c.Status.Kind {
	case crop.StatusFruiting, crop.StatusSeeding:
		s.attachFruit(e, c.Status)
	case crop.StatusDead:
		s.despawn(e, &c, event.DespawnDead)
		return e, nil
	}

	w.Components.Crop.SetComponent(e, c)
	return e, nil
}

// Advance runs one day of stage advancement for a single instance
func (s *CropSystem) Advance(e core.Entity) {
	w := s.world
	c, ok := w.Components.Crop.GetComponent(e)
	if !ok {
		return
	}

	// Timer counts ticks remaining; the stage advances on the tick that empties it
	// so a sampled 0 and a sampled 1 both advance on the next tick
	if c.Timer > 0 {
		c.Timer--
	}
	if c.Timer > 0 {
		w.Components.Crop.SetComponent(e, c)
		return
	}

	c.Index++
	stage, ok := c.Stage()
	if !ok {
		log.Printf("[INFO] crop %s reached end of cycle after %d stages", s.nameOf(e), len(c.Stages))
		s.despawn(e, &c, event.DespawnEndOfCycle)
		return
	}

	tr, _ := w.Components.Transform.GetComponent(e)
	name := s.nameOf(e)
	s.statStageMoves.Add(1)
	s.statLastStage.Store(name)
	next := c.Status.Kind
	if stage.BeginStatus != nil {
		next = stage.BeginStatus.Kind
	}
	w.PushEvent(event.EventCropStageChange, &event.CropStageChangePayload{
		Entity: e, CropID: c.ID, Name: name, Position: tr.Position, Index: c.Index, Status: next,
	})

	// Old shapes go now; ModelSystem regenerates them when the new model loads
	w.Resources.Colliders.RemoveColliders(e)
	RequestModel(w, e, stage.Model)

	// Outgoing status
	switch c.Status.Kind {
	case crop.StatusDead:
		s.despawn(e, &c, event.DespawnDead)
		return
	case crop.StatusFruiting, crop.StatusSeeding:
		if !c.Harvested {
			s.emitDrops(e, c.ID, tr.Position, c.Status.Drops, event.DropStatusExit)
		}
	}

	if stage.BeginStatus == nil {
		w.Components.Crop.SetComponent(e, c)
		return
	}

	// Incoming status
	c.Status = stage.BeginStatus.Clone()
	c.Harvested = false
	switch c.Status.Kind {
	case crop.StatusFruiting, crop.StatusSeeding:
		s.attachFruit(e, c.Status)
	case crop.StatusDead:
		s.despawn(e, &c, event.DespawnDead)
		return
	case crop.StatusGrowing:
		w.Components.Fruit.RemoveEntity(e)
		c.Timer = stage.Duration.Get(w.Resources.Rand)
	}

	w.Components.Crop.SetComponent(e, c)
}

// Harvest collects the attached fruit payload, if any
// The drops are emitted once; the following status exit does not repeat them
func (s *CropSystem) Harvest(e core.Entity) bool {
	w := s.world
	fruit, ok := w.Components.Fruit.GetComponent(e)
	if !ok {
		return false
	}
	c, ok := w.Components.Crop.GetComponent(e)
	if !ok {
		return false
	}

	tr, _ := w.Components.Transform.GetComponent(e)
	s.emitDrops(e, c.ID, tr.Position, fruit.Drops, event.DropHarvest)
	w.Components.Fruit.RemoveEntity(e)
	c.Harvested = true
	w.Components.Crop.SetComponent(e, c)
	return true
}

func (s *CropSystem) attachFruit(e core.Entity, st crop.Status) {
	s.world.Components.Fruit.SetComponent(e, component.CropFruitComponent{Drops: st.Clone().Drops})
	RequestModel(s.world, e, st.Model)
}

func (s *CropSystem) emitDrops(e core.Entity, id string, pos core.Vec3, drops []crop.ItemDrop, reason event.DropReason) {
	if len(drops) == 0 {
		return
	}
	out := make([]crop.ItemDrop, len(drops))
	copy(out, drops)
	log.Printf("[INFO] crop %s drops %d item kinds (%s)", s.nameOf(e), len(out), reason)
	s.world.PushEvent(event.EventCropDrop, &event.CropDropPayload{
		Entity: e, CropID: id, Position: pos, Drops: out, Reason: reason,
	})
}

// despawn announces and destroys the instance; nothing else runs for it afterwards
func (s *CropSystem) despawn(e core.Entity, c *component.CropComponent, reason event.DespawnReason) {
	w := s.world
	tr, _ := w.Components.Transform.GetComponent(e)
	w.PushEvent(event.EventCropDespawn, &event.CropDespawnPayload{
		Entity: e, CropID: c.ID, Name: s.nameOf(e), Position: tr.Position, Reason: reason,
	})
	w.DestroyEntity(e)
	s.statAlive.Add(-1)
	s.statDespawned.Add(1)
}

func (s *CropSystem) nameOf(e core.Entity) string {
	if n, ok := s.world.Components.Name.GetComponent(e); ok {
		return n.Name
	}
	return fmt.Sprintf("entity %d", e)
}
