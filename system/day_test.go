package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/farmcycle/event"
)

func TestDay_TimerExpiry(t *testing.T) {
	h := newHarness(t, time.Second)

	for i := 0; i < 3; i++ {
		h.sched.Step(250 * time.Millisecond)
	}
	if d := h.world.Resources.Day.Day; d != 0 {
		t.Fatalf("day = %d before expiry", d)
	}
	h.sched.Step(250 * time.Millisecond)
	if d := h.world.Resources.Day.Day; d != 1 {
		t.Fatalf("day = %d after expiry, want 1", d)
	}

	var manual bool
	for _, ev := range h.events {
		if p, ok := ev.Payload.(*event.NewDayPayload); ok {
			manual = p.Manual
		}
	}
	if manual {
		t.Error("timer day reported as manual")
	}
}

func TestDay_ManualTriggerResetsCountdown(t *testing.T) {
	h := newHarness(t, time.Second)

	for i := 0; i < 3; i++ {
		h.sched.Step(250 * time.Millisecond)
	}
	h.world.PushEvent(event.EventDayTriggerRequest, nil)
	h.sched.Step(250 * time.Millisecond)
	if d := h.world.Resources.Day.Day; d != 1 {
		t.Fatalf("day = %d after trigger", d)
	}

	// 750ms left on the fresh countdown
	h.sched.Step(250 * time.Millisecond)
	h.sched.Step(250 * time.Millisecond)
	if d := h.world.Resources.Day.Day; d != 1 {
		t.Fatalf("day = %d, countdown not reset", d)
	}
	h.sched.Step(250 * time.Millisecond)
	if d := h.world.Resources.Day.Day; d != 2 {
		t.Errorf("day = %d, want 2", d)
	}
}

func TestDay_DoubleTriggerInOneFrame(t *testing.T) {
	h := newHarness(t, longDay)
	e := h.plant(t, growingDef(5))

	h.world.PushEvent(event.EventDayTriggerRequest, nil)
	h.world.PushEvent(event.EventDayTriggerRequest, nil)
	h.step()

	if n := h.count(event.EventNewDay); n != 2 {
		t.Fatalf("new days = %d, want 2", n)
	}
	if c := h.crop(t, e); c.Timer != 3 {
		t.Errorf("timer = %d, want 3", c.Timer)
	}
}

func TestDay_PausedClockHoldsDay(t *testing.T) {
	h := newHarness(t, time.Second)
	h.sched.Pause()

	for i := 0; i < 8; i++ {
		h.sched.Step(250 * time.Millisecond)
	}
	if d := h.world.Resources.Day.Day; d != 0 {
		t.Errorf("day advanced to %d while paused", d)
	}

	// Manual triggers still work while paused
	h.tick()
	if d := h.world.Resources.Day.Day; d != 1 {
		t.Errorf("manual day while paused = %d", d)
	}
}

func TestDay_ProgressMetric(t *testing.T) {
	h := newHarness(t, time.Second)
	h.sched.Step(250 * time.Millisecond)

	got := h.world.Resources.Status.Floats.Get("day.progress").Get()
	if got < 0.249 || got > 0.251 {
		t.Errorf("progress = %f, want 0.25", got)
	}
}
