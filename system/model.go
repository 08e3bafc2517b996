package system

// @lixen: #dev{feature[crop(system)],feature[model(system)]}

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/component"
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
)

// RequestModel issues an asynchronous model load for e and queues the swap in request order
// Empty shortcodes and entities without a model component are ignored
func RequestModel(w *engine.World, e core.Entity, shortcode string) {
	if shortcode == "" {
		return
	}
	m, ok := w.Components.Model.GetComponent(e)
	if !ok {
		return
	}
	h := w.Resources.Assets.Load(shortcode)
	m.Pending = append(m.Pending, component.ModelRequest{Handle: h, Path: asset.Model(shortcode)})
	w.Components.Model.SetComponent(e, m)
}

// ModelSystem polls queued model loads and applies them in order
// A loaded request becomes the current model and regenerates colliders;
// a failed one is logged and skipped, keeping the previous model and rebuilding its colliders
type ModelSystem struct {
	world *engine.World

	statSwaps   *atomic.Int64
	statMissing *atomic.Int64
	statPending *atomic.Int64

	enabled bool
}

// NewModelSystem creates the model swap system
func NewModelSystem(world *engine.World) engine.System {
	reg := world.Resources.Status
	s := &ModelSystem{
		world:       world,
		statSwaps:   reg.Ints.Get("model.swaps"),
		statMissing: reg.Ints.Get("model.missing"),
		statPending: reg.Ints.Get("model.pending"),
	}
	s.Init()
	return s
}

// Init resets session state
func (s *ModelSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *ModelSystem) Name() string {
	return "model"
}

// Priority returns the system's priority
func (s *ModelSystem) Priority() int {
	return parameter.PriorityModel
}

// EventTypes returns the event types ModelSystem handles
func (s *ModelSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent processes enable toggles
func (s *ModelSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}
}

// Update resolves every ready request at the head of each entity's queue
func (s *ModelSystem) Update() {
	if !s.enabled {
		return
	}

	w := s.world
	loader := w.Resources.Assets
	var pending int64

	for _, e := range w.Components.Model.GetAllEntities() {
		m, ok := w.Components.Model.GetComponent(e)
		if !ok || len(m.Pending) == 0 {
			continue
		}

		resolved := 0
	queue:
		for i, req := range m.Pending {
			switch loader.LoadState(req.Handle) {
			case asset.LoadPending:
				break queue
			case asset.LoadLoaded:
				m.Current = req.Path
				w.Resources.Colliders.RegenerateColliders(e, req.Path.Short)
				s.statSwaps.Add(1)
			case asset.LoadFailed:
				log.Printf("[WARN] model %s for entity %d missing, keeping %s", req.Path, e, m.Current)
				s.statMissing.Add(1)
				// Colliders were dropped at the stage change; restore them for the kept model
				if m.Current.Short != "" && i == len(m.Pending)-1 {
					w.Resources.Colliders.RegenerateColliders(e, m.Current.Short)
				}
			}
			resolved++
		}

		if resolved == 0 {
			pending += int64(len(m.Pending))
			continue
		}
		m.Pending = append([]component.ModelRequest(nil), m.Pending[resolved:]...)
		pending += int64(len(m.Pending))
		w.Components.Model.SetComponent(e, m)
	}

	s.statPending.Store(pending)
}
