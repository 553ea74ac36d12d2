package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/parameter"
)

// Sound identifiers understood by the library
const (
	SoundHorn  core.SoundID = "vehicle.horn"
	SoundSiren core.SoundID = "vehicle.siren"
	SoundYelp  core.SoundID = "vehicle.yelp"
)

// generator renders a finite unity-gain streamer for one sound
type generator func(rate beep.SampleRate) beep.Streamer

var library = map[core.SoundID]generator{
	SoundHorn:  createHorn,
	SoundSiren: createSiren,
	SoundYelp:  createYelp,
}

// Known reports whether the library can render id
func Known(id core.SoundID) bool {
	_, ok := library[id]
	return ok
}

// createHorn generates a two-tone car horn (major third)
func createHorn(rate beep.SampleRate) beep.Streamer {
	low := NewOscillator(parameter.HornLowFreq, parameter.HornDuration, WaveSquare, rate)
	high := NewOscillator(parameter.HornHighFreq, parameter.HornDuration, WaveSaw, rate)

	mixed := beep.Mix(
		newVolume(low, 0.5),
		newVolume(high, 0.35),
	)
	return NewEnvelope(mixed, parameter.HornDuration, parameter.HornAttack, parameter.HornRelease, rate)
}

// createSiren generates one wail cycle
func createSiren(rate beep.SampleRate) beep.Streamer {
	return newVolume(NewSweep(parameter.SirenLowFreq, parameter.SirenTopFreq, parameter.SirenCycle, WaveSine, rate), 0.6)
}

// createYelp generates one fast yelp cycle
func createYelp(rate beep.SampleRate) beep.Streamer {
	return newVolume(NewSweep(parameter.SirenLowFreq, parameter.SirenTopFreq, parameter.YelpCycle, WaveSquare, rate), 0.4)
}
