package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
)

func TestVfx_StageChangeBurstLifetime(t *testing.T) {
	h := newHarness(t, longDay)
	e := h.plant(t, growingDef(1, 1))
	h.tick()

	fxs := h.world.Components.Effect.GetAllEntities()
	if len(fxs) != 1 {
		t.Fatalf("effects = %d, want 1", len(fxs))
	}
	fx, _ := h.world.Components.Effect.GetComponent(fxs[0])
	tr, _ := h.world.Components.Transform.GetComponent(e)
	if fx.ID != parameter.VfxCropStageChange || fx.Position != tr.Position || fx.Particles != 50 {
		t.Errorf("effect = %+v", fx)
	}

	// 3.5s oneshot in 250ms frames
	for i := 0; i < 13; i++ {
		h.sched.Step(250 * time.Millisecond)
	}
	if !h.world.HasEntity(fxs[0]) {
		t.Fatal("effect expired early")
	}
	h.sched.Step(250 * time.Millisecond)
	if h.world.HasEntity(fxs[0]) {
		t.Error("effect outlived its oneshot")
	}
}

func TestVfx_UnknownEffectIgnored(t *testing.T) {
	h := newHarness(t, longDay)
	h.world.PushEvent(event.EventVfxSpawnRequest, &event.VfxSpawnRequestPayload{ID: "vfx_nope", Position: core.V3(0, 0, 0)})
	h.step()

	if n := h.world.Components.Effect.CountEntities(); n != 0 {
		t.Errorf("effects = %d", n)
	}
}
