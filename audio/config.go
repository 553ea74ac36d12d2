package audio

import (
	"github.com/lixenwraith/vi-garage/parameter"
)

// AudioConfig holds audio engine settings
type AudioConfig struct {
	Enabled      bool    // Start unmuted
	MasterVolume float64 // Linear gain in [0,1]
	SampleRate   int

	// Device opens the system speaker; without it the mixer is pulled via Render
	Device bool
}

// DefaultAudioConfig returns muted defaults with device output
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      false,
		MasterVolume: parameter.DefaultMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		Device:       true,
	}
}
