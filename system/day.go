package system

// @lixen: #dev{feature[day(system)]}

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
	"github.com/lixenwraith/farmcycle/status"
)

// DaySystem is the day-cycle clock
// A repeating countdown advanced by frame delta; expiry or a manual trigger resets it and emits EventNewDay
type DaySystem struct {
	world *engine.World

	length    time.Duration
	remaining time.Duration
	day       int

	statDay      *atomic.Int64
	statManual   *atomic.Int64
	statProgress *status.AtomicFloat

	enabled bool
}

// NewDaySystem creates the day clock using Resources.Day.Length, falling back to DayDuration
func NewDaySystem(world *engine.World) engine.System {
	length := world.Resources.Day.Length
	if length <= 0 {
		length = parameter.DayDuration
	}
	if length < parameter.MinDayDuration {
		length = parameter.MinDayDuration
	}

	reg := world.Resources.Status
	s := &DaySystem{
		world:        world,
		length:       length,
		statDay:      reg.Ints.Get("day.count"),
		statManual:   reg.Ints.Get("day.manual"),
		statProgress: reg.Floats.Get("day.progress"),
	}
	s.Init()
	return s
}

// Init restarts the countdown from a full day and resets the counter
func (s *DaySystem) Init() {
	s.remaining = s.length
	s.day = 0
	s.enabled = true
	s.publish()
}

// Name returns system's name
func (s *DaySystem) Name() string {
	return "day"
}

// Priority returns the system's priority
func (s *DaySystem) Priority() int {
	return parameter.PriorityDay
}

// EventTypes returns the event types DaySystem handles
func (s *DaySystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDayTriggerRequest,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent processes manual triggers and enable toggles
func (s *DaySystem) HandleEvent(ev event.GameEvent) {
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

	if ev.Type == event.EventDayTriggerRequest {
		// Manual trigger restarts the countdown; it never banks an extra day
		s.remaining = s.length
		s.statManual.Add(1)
		s.fire(true)
	}
}

// Update advances the countdown by the frame delta
func (s *DaySystem) Update() {
	if !s.enabled {
		return
	}

	s.remaining -= s.world.Resources.Time.DeltaTime
	for s.remaining <= 0 {
		s.remaining += s.length
		s.fire(false)
	}
	s.publish()
}

func (s *DaySystem) fire(manual bool) {
	s.day++
	s.publish()
	log.Printf("[INFO] day %d begins (manual=%v)", s.day, manual)
	s.world.PushEvent(event.EventNewDay, &event.NewDayPayload{Day: s.day, Manual: manual})
}

func (s *DaySystem) publish() {
	d := s.world.Resources.Day
	d.Day = s.day
	d.Remaining = s.remaining
	d.Length = s.length
	s.statDay.Store(int64(s.day))
	s.statProgress.Set(d.Progress())
}
