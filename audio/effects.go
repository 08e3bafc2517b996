package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/farmcycle/parameter"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// at returns the wave value for a phase in [0, 1)
func (w WaveType) at(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// NewOscillator streams exactly rate.N(duration) samples of a raw wave
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	left := rate.N(duration)
	step := freq / float64(rate)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		n := min(len(samples), left)
		for i := range n {
			v := wave.at(phase)
			samples[i] = [2]float64{v, v}
			phase = math.Mod(phase+step, 1)
		}
		left -= n
		return n, true
	})
}

// NewEnvelope fades s in over attack and out over release, cutting it at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	pos := 0

	gain := func(p int) float64 {
		switch {
		case p < att:
			return float64(p) / float64(att)
		case rel > 0 && p >= total-rel:
			return float64(total-p) / float64(rel)
		default:
			return 1
		}
	}

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n, ok := s.Stream(samples[:min(len(samples), total-pos)])
		for i := range n {
			g := gain(pos)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// gained scales s linearly; zero gain is silent since log2(0) is -Inf
func gained(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// tone is one shaped note of a cue
type tone struct {
	freq    float64
	wave    WaveType
	length  time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
}

func (t tone) stream(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(t.freq, t.length, t.wave, rate)
	return gained(NewEnvelope(osc, t.length, t.attack, t.release, rate), t.gain)
}

// CueStreamer builds a fresh streamer for c, nil for an unknown cue
//
//	sprout: rising sine with a fifth above, played together
//	wilt:   low triangle with a long release
//	coin:   two square notes in sequence
func CueStreamer(c Cue, cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch c {
	case CueSprout:
		root := tone{parameter.SproutSoundFreq, WaveSine, parameter.SproutSoundDuration,
			parameter.SproutSoundAttack, parameter.SproutSoundRelease, 0.7}
		fifth := tone{parameter.SproutSoundFreq * 1.5, WaveSine, parameter.SproutSoundDuration,
			parameter.SproutSoundAttack, parameter.SproutSoundRelease / 2, 0.3}
		s = beep.Mix(root.stream(rate), fifth.stream(rate))
	case CueWilt:
		s = tone{parameter.WiltSoundFreq, WaveTriangle, parameter.WiltSoundDuration,
			parameter.WiltSoundAttack, parameter.WiltSoundRelease, 1}.stream(rate)
	case CueCoin:
		first := tone{parameter.CoinSoundNote1Freq, WaveSquare, parameter.CoinSoundNote1Duration,
			parameter.CoinSoundAttack, parameter.CoinSoundNote1Release, 1}
		second := tone{parameter.CoinSoundNote2Freq, WaveSquare, parameter.CoinSoundNote2Duration,
			parameter.CoinSoundAttack, parameter.CoinSoundNote2Release, 1}
		s = beep.Seq(first.stream(rate), second.stream(rate))
	default:
		return nil
	}
	return gained(s, cfg.CueVolumes[c]*cfg.MasterVolume)
}
