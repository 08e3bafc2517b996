package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/farmcycle/parameter"
)

// Engine plays cues through the speaker mixer
// Start failure (no audio device) leaves the engine in silent mode, which is not an error
type Engine struct {
	config *Config
	mixer  *beep.Mixer

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	mu         sync.Mutex
	lastPlayed [cueCount]time.Time
	now        func() time.Time

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewEngine creates an engine; nil cfg uses DefaultConfig
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		config: cfg,
		mixer:  &beep.Mixer{},
		now:    time.Now,
	}
	e.muted.Store(!cfg.Enabled)
	return e
}

// Start initialises the speaker and attaches the mixer
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("audio engine already running")
	}

	rate := beep.SampleRate(e.config.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		e.silentMode.Store(true)
		return nil
	}
	speaker.Play(e.mixer)
	return nil
}

// Stop detaches every stream and closes the speaker
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	if e.silentMode.Load() {
		return
	}
	speaker.Clear()
	speaker.Close()
}

// Play queues cue for playback
// Returns false when muted, silent, not started, or inside MinSoundGap of the same cue
func (e *Engine) Play(c Cue) bool {
	if !e.IsEnabled() {
		return false
	}
	if !e.admit(c) {
		e.dropped.Add(1)
		return false
	}

	s := CueStreamer(c, e.config)
	if s == nil {
		return false
	}
	speaker.Lock()
	e.mixer.Add(s)
	speaker.Unlock()
	e.played.Add(1)
	return true
}

// admit applies the per-cue rate limit
func (e *Engine) admit(c Cue) bool {
	if c < 0 || c >= cueCount {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	if !e.lastPlayed[c].IsZero() && now.Sub(e.lastPlayed[c]) < parameter.MinSoundGap {
		return false
	}
	e.lastPlayed[c] = now
	return true
}

// ToggleMute toggles mute state, returns true if sound is now on
func (e *Engine) ToggleMute() bool {
	newMute := !e.muted.Load()
	e.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// IsEnabled returns true if running, unmuted and attached to a device
func (e *Engine) IsEnabled() bool {
	return e.running.Load() && !e.muted.Load() && !e.silentMode.Load()
}

// Stats returns played and rate-limited counts
func (e *Engine) Stats() (played, dropped uint64) {
	return e.played.Load(), e.dropped.Load()
}
