package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Audio Mixing
const (
	// DefaultMasterVolume is linear gain in [0,1]
	DefaultMasterVolume = 0.8

	// DefaultMaxDistance is the audible radius for one-shot sounds without explicit params
	DefaultMaxDistance = 15.0
)

// Horn Sound
const (
	HornDuration = 450 * time.Millisecond
	HornLowFreq  = 349.0 // F4
	HornHighFreq = 440.0 // A4
	HornAttack   = 10 * time.Millisecond
	HornRelease  = 60 * time.Millisecond
)

// Siren Sound
const (
	SirenCycle   = 1200 * time.Millisecond // One full wail sweep
	SirenLowFreq = 650.0
	SirenTopFreq = 1450.0
	YelpCycle    = 250 * time.Millisecond
)
