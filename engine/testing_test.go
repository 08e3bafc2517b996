package engine

import (
	"time"

	"github.com/lixenwraith/farmcycle/asset"
	"github.com/lixenwraith/farmcycle/crop"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/physics"
)

// nopLoader resolves every request immediately
type nopLoader struct{ next asset.Handle }

func (l *nopLoader) Load(string) asset.Handle {
	l.next++
	return l.next
}

func (l *nopLoader) LoadState(asset.Handle) asset.LoadState { return asset.LoadLoaded }

func newTestWorld() (*World, *physics.HullRegistry) {
	hulls := physics.NewHullRegistry()
	res := NewResource(1, crop.NewLibrary("unused"), &nopLoader{}, hulls)
	return NewWorld(res), hulls
}

func newTestClock() *PausableClock {
	return NewPausableClock(NewManualClock(time.Unix(0, 0)))
}

// recordingSystem logs everything it sees and optionally re-emits
type recordingSystem struct {
	world    *World
	name     string
	priority int
	types    []event.EventType
	log      *[]string
	onEvent  func(ev event.GameEvent)
}

func (s *recordingSystem) Name() string                  { return s.name }
func (s *recordingSystem) Priority() int                 { return s.priority }
func (s *recordingSystem) EventTypes() []event.EventType { return s.types }

func (s *recordingSystem) HandleEvent(ev event.GameEvent) {
	*s.log = append(*s.log, s.name+":"+event.GetEventName(ev.Type))
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}

func (s *recordingSystem) Update() {
	*s.log = append(*s.log, s.name+":update")
}
