package system

// @lixen: #dev{feature[audio(system)]}

import (
	"github.com/lixenwraith/farmcycle/audio"
	"github.com/lixenwraith/farmcycle/engine"
	"github.com/lixenwraith/farmcycle/event"
	"github.com/lixenwraith/farmcycle/parameter"
)

// CuePlayer plays a sound cue; *audio.Engine is the production player
type CuePlayer interface {
	Play(c audio.Cue) bool
}

// AudioSystem maps lifecycle events to sound cues
type AudioSystem struct {
	world  *engine.World
	player CuePlayer

	enabled bool
}

// NewAudioSystem creates the cue system; a nil player leaves it inert
func NewAudioSystem(world *engine.World, player CuePlayer) engine.System {
	s := &AudioSystem{
		world:  world,
		player: player,
	}
	s.Init()
	return s
}

// Init resets session state
func (s *AudioSystem) Init() {
	s.enabled = s.player != nil
}

// Name returns system's name
func (s *AudioSystem) Name() string {
	return "audio"
}

// Priority returns the system's priority
func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCropStageChange,
		event.EventCropDespawn,
		event.EventItemCollected,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent plays the cue mapped to the event
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled && s.player != nil
			}
		}
	}

	if !s.enabled {
		return
	}

	switch ev.Type {
	case event.EventCropStageChange:
		s.player.Play(audio.CueSprout)
	case event.EventCropDespawn:
		s.player.Play(audio.CueWilt)
	case event.EventItemCollected:
		s.player.Play(audio.CueCoin)
	}
}

// Update has no per-frame work
func (s *AudioSystem) Update() {}
