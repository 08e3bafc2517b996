package system

// @lixen: #dev{feature[vfx(system)]}

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/farmcycle/component"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
)

// effectDef is a registered one-shot particle effect
type effectDef struct {
	oneshot   time.Duration
	particles int
}

// effectRegistry maps effect names to their parameters
var effectRegistry = map[string]effectDef{
	parameter.VfxCropStageChange: {
		oneshot:   parameter.VfxCropStageChangeOneshot,
		particles: parameter.VfxCropStageChangeParticles,
	},
}

// VfxSystem spawns named one-shot effects and despawns them when their timer runs out
type VfxSystem struct {
	world *engine.World

	statActive  *atomic.Int64
	statSpawned *atomic.Int64

	enabled bool
}

// NewVfxSystem creates the effect system
func NewVfxSystem(world *engine.World) engine.System {
	reg := world.Resources.Status
	s := &VfxSystem{
		world:       world,
		statActive:  reg.Ints.Get("vfx.active"),
		statSpawned: reg.Ints.Get("vfx.spawned"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *VfxSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *VfxSystem) Name() string {
	return "vfx"
}

// Priority returns the system's priority
func (s *VfxSystem) Priority() int {
	return parameter.PriorityEffect
}

// EventTypes returns the event types VfxSystem handles
func (s *VfxSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCropStageChange,
		event.EventVfxSpawnRequest,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent turns stage changes into spawn requests and spawns effects
func (s *VfxSystem) HandleEvent(ev event.GameEvent) {
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
	case event.EventCropStageChange:
		if payload, ok := ev.Payload.(*event.CropStageChangePayload); ok {
			s.world.PushEvent(event.EventVfxSpawnRequest, &event.VfxSpawnRequestPayload{
				ID:       parameter.VfxCropStageChange,
				Position: payload.Position,
			})
		}

	case event.EventVfxSpawnRequest:
		if payload, ok := ev.Payload.(*event.VfxSpawnRequestPayload); ok {
			s.spawn(payload)
		}
	}
}

func (s *VfxSystem) spawn(p *event.VfxSpawnRequestPayload) {
	def, ok := effectRegistry[p.ID]
	if !ok {
		log.Printf("[WARN] unknown effect %q", p.ID)
		return
	}
	e := s.world.CreateEntity()
	s.world.Components.Effect.SetComponent(e, component.EffectComponent{
		ID:        p.ID,
		Position:  p.Position,
		Particles: def.particles,
		Remaining: def.oneshot,
	})
	s.statSpawned.Add(1)
}

// Update ages effects and despawns finished ones
func (s *VfxSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	store := s.world.Components.Effect
	for _, e := range store.GetAllEntities() {
		fx, ok := store.GetComponent(e)
		if !ok {
			continue
		}
		fx.Remaining -= dt
		if fx.Remaining <= 0 {
			s.world.DestroyEntity(e)
			continue
		}
		store.SetComponent(e, fx)
	}
	s.statActive.Store(int64(store.CountEntities()))
}
