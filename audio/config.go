package audio

import (
	"os"
	"strconv"

	json "github.com/goccy/go-json"
)

// LoadConfig overlays environment variables on base (DefaultConfig when nil)
func LoadConfig(base *Config) *Config {
	cfg := DefaultConfig()
	if base != nil {
		*cfg = *base
		cfg.CueVolumes = make(map[Cue]float64, len(base.CueVolumes))
		for k, v := range base.CueVolumes {
			cfg.CueVolumes[k] = v
		}
	}

	if enabled := os.Getenv("FARMCYCLE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume as 0-100
	if volume := os.Getenv("FARMCYCLE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	// Per-cue volumes as a JSON object keyed by cue name
	if cueVols := os.Getenv("FARMCYCLE_CUE_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for c := Cue(0); c < cueCount; c++ {
				if v, ok := volumes[c.String()]; ok {
					cfg.CueVolumes[c] = clampVolume(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("FARMCYCLE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
