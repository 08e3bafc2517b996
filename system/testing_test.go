package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
	"github.com/lixenwraith/farmcycle/physics"
)

// scriptLoader reports per-shortcode load states, read at poll time; unknown shortcodes are loaded
type scriptLoader struct {
	next    asset.Handle
	handles map[asset.Handle]string
	states  map[string]asset.LoadState
	log     []string
}

func newScriptLoader() *scriptLoader {
	return &scriptLoader{
		handles: make(map[asset.Handle]string),
		states:  make(map[string]asset.LoadState),
	}
}

func (l *scriptLoader) Load(short string) asset.Handle {
	l.next++
	l.handles[l.next] = short
	l.log = append(l.log, short)
	return l.next
}

func (l *scriptLoader) LoadState(h asset.Handle) asset.LoadState {
	short, ok := l.handles[h]
	if !ok {
		return asset.LoadFailed
	}
	if st, ok := l.states[short]; ok {
		return st
	}
	return asset.LoadLoaded
}

type harness struct {
	world  *engine.World
	sched  *engine.ClockScheduler
	crops  *CropSystem
	hulls  *physics.HullRegistry
	loader *scriptLoader
	events []event.GameEvent
}

// newHarness builds a world with the core lifecycle systems and a day of dayLength
func newHarness(t *testing.T, dayLength time.Duration, extra ...func(w *engine.World) engine.System) *harness {
	t.Helper()
	event.InitRegistry()

	h := &harness{
		hulls:  physics.NewHullRegistry(),
		loader: newScriptLoader(),
	}
	lib := crop.NewLibrary(t.TempDir()).WithEmbedded(asset.DefaultCropData)
	res := engine.NewResource(42, lib, h.loader, h.hulls)
	res.Day.Length = dayLength

	w := engine.NewWorld(res)
	h.world = w
	h.crops = NewCropSystem(w).(*CropSystem)
	w.AddSystem(NewDaySystem(w))
	w.AddSystem(h.crops)
	w.AddSystem(NewDropSystem(w))
	w.AddSystem(NewModelSystem(w))
	w.AddSystem(NewVfxSystem(w))
	for _, fn := range extra {
		w.AddSystem(fn(w))
	}

	clock := engine.NewPausableClock(engine.NewManualClock(time.Unix(0, 0)))
	h.sched = engine.NewClockScheduler(w, clock, parameter.FrameUpdateInterval)
	h.sched.Router().Observe(func(ev event.GameEvent) {
		h.events = append(h.events, ev)
	})
	return h
}

// step runs one frame with no game time so only queued work happens
func (h *harness) step() {
	h.sched.Step(0)
}

func (h *harness) plant(t *testing.T, def *crop.Definition) core.Entity {
	t.Helper()
	e, err := h.crops.Plant(def, core.V3(1, 0, 2))
	if err != nil {
		t.Fatalf("plant %s: %v", def.ID, err)
	}
	return e
}

// tick delivers one manual day and settles the frame
func (h *harness) tick() {
	h.world.PushEvent(event.EventDayTriggerRequest, nil)
	h.step()
}

func (h *harness) count(t event.EventType) int {
	n := 0
	for _, ev := range h.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (h *harness) crop(t *testing.T, e core.Entity) *cropState {
	t.Helper()
	c, ok := h.world.Components.Crop.GetComponent(e)
	if !ok {
		t.Fatalf("entity %d has no crop component", e)
	}
	return &cropState{Index: c.Index, Timer: c.Timer, Status: c.Status, Harvested: c.Harvested}
}

type cropState struct {
	Index     int
	Timer     uint32
	Status    crop.Status
	Harvested bool
}

// longDay keeps the day clock from firing on its own during a test
const longDay = time.Hour

// fruitingDef grows for a day, fruits for a day, then dies
func fruitingDef() *crop.Definition {
	growing, fruiting, dead := crop.Growing(), crop.Fruiting("::fruit.glb", crop.Drop("corn", 2, 2)), crop.Dead()
	return &crop.Definition{
		ID: "test_corn",
		Stages: []crop.Stage{
			{Model: "::sprout.glb", Duration: crop.Fixed(1), BeginStatus: &growing},
			{Model: "::mature.glb", Duration: crop.Fixed(1), BeginStatus: &fruiting},
			{Model: "::withered.glb", Duration: crop.Fixed(1), BeginStatus: &dead},
		},
	}
}

// growingDef has only Growing stages with the given fixed durations
func growingDef(durations ...uint32) *crop.Definition {
	def := &crop.Definition{ID: "test_grass"}
	for i, d := range durations {
		g := crop.Growing()
		def.Stages = append(def.Stages, crop.Stage{
			Model:       "::grass_" + string(rune('a'+i)) + ".glb",
			Duration:    crop.Fixed(d),
			BeginStatus: &g,
		})
	}
	return def
}
