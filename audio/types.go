package audio

import "github.com/lixenwraith/farmcycle/parameter"

// Cue identifies a synthesised sound effect
type Cue int

const (
	CueSprout Cue = iota // crop entered a new stage
	CueWilt              // crop despawned
	CueCoin              // drop credited to the inventory
	cueCount
)

var cueNames = [...]string{
	CueSprout: "sprout",
	CueWilt:   "wilt",
	CueCoin:   "coin",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// Config holds audio settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	CueVolumes   map[Cue]float64
}

// DefaultConfig returns the default audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   parameter.AudioSampleRate,
		CueVolumes: map[Cue]float64{
			CueSprout: 0.6,
			CueWilt:   0.5,
			CueCoin:   0.4,
		},
	}
}
