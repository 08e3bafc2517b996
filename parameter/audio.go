package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive sounds of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Sprout Sound (stage change)
const (
	SproutSoundDuration = 220 * time.Millisecond
	SproutSoundAttack   = 10 * time.Millisecond
	SproutSoundRelease  = 120 * time.Millisecond
	SproutSoundFreq     = 660.0
)

// Wilt Sound (despawn)
const (
	WiltSoundDuration = 400 * time.Millisecond
	WiltSoundAttack   = 20 * time.Millisecond
	WiltSoundRelease  = 300 * time.Millisecond
	WiltSoundFreq     = 196.0
)

// Coin Sound (drop credited)
const (
	CoinSoundNote1Duration = 80 * time.Millisecond
	CoinSoundNote2Duration = 280 * time.Millisecond
	CoinSoundAttack        = 5 * time.Millisecond
	CoinSoundNote1Release  = 40 * time.Millisecond
	CoinSoundNote2Release  = 200 * time.Millisecond
	CoinSoundNote1Freq     = 987.77
	CoinSoundNote2Freq     = 1318.51
)
