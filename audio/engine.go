package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/parameter"
)

// voice is a live streamer in the mixer
type voice struct {
	ctrl   *beep.Ctrl
	volume *effects.Volume
	gain   float64
	loop   bool
	done   atomic.Bool // Set from the speaker goroutine when a one-shot drains
}

// AudioEngine mixes vehicle sounds through beep
// Voices are addressed by engine-local ids handed out by Play
type AudioEngine struct {
	config *AudioConfig
	rate   beep.SampleRate
	cache  *soundCache
	mixer  *beep.Mixer

	device atomic.Bool // Speaker initialised
	mixMu  sync.Mutex  // Guards mixer when no device owns it

	mu        sync.Mutex // Protects voices and config
	voices    map[uint64]*voice
	nextVoice uint64

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewAudioEngine creates an audio engine
func NewAudioEngine(cfg ...*AudioConfig) (*AudioEngine, error) {
	config := DefaultAudioConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}
	if config.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", config.SampleRate)
	}

	rate := beep.SampleRate(config.SampleRate)
	ae := &AudioEngine{
		config: config,
		rate:   rate,
		cache:  newSoundCache(rate),
		mixer:  &beep.Mixer{},
		voices: make(map[uint64]*voice),
	}
	ae.muted.Store(!config.Enabled)

	ae.cache.preload()

	return ae, nil
}

// Start opens the speaker when configured; falls back to silent mode on device failure
func (ae *AudioEngine) Start() error {
	if ae.running.Load() {
		return fmt.Errorf("audio engine already running")
	}

	if ae.config.Device {
		if err := speaker.Init(ae.rate, ae.rate.N(parameter.AudioBufferDuration)); err != nil {
			ae.silentMode.Store(true)
			ae.running.Store(true)
			return nil // Silent mode, not an error
		}
		ae.device.Store(true)
		speaker.Play(ae.mixer)
	}

	ae.running.Store(true)
	return nil
}

// Stop terminates the engine and drops all voices
func (ae *AudioEngine) Stop() {
	if !ae.running.CompareAndSwap(true, false) {
		return
	}

	ae.lockMixer()
	ae.mixer.Clear()
	ae.unlockMixer()

	if ae.device.CompareAndSwap(true, false) {
		speaker.Close()
	}

	ae.mu.Lock()
	ae.voices = make(map[uint64]*voice)
	ae.mu.Unlock()
}

func (ae *AudioEngine) lockMixer() {
	if ae.device.Load() {
		speaker.Lock()
		return
	}
	ae.mixMu.Lock()
}

func (ae *AudioEngine) unlockMixer() {
	if ae.device.Load() {
		speaker.Unlock()
		return
	}
	ae.mixMu.Unlock()
}

// Play starts a sound at the given linear gain, looping when loop is set
// Returns the voice id; ok is false when muted, silent or the sound is unknown
func (ae *AudioEngine) Play(sound core.SoundID, loop bool, gain float64) (uint64, bool) {
	if !ae.running.Load() || ae.muted.Load() || ae.silentMode.Load() {
		return 0, false
	}

	buf := ae.cache.get(sound)
	if buf == nil {
		ae.dropped.Add(1)
		return 0, false
	}

	var src beep.Streamer = buf.Streamer(0, buf.Len())
	if loop {
		src = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}

	ae.mu.Lock()
	defer ae.mu.Unlock()

	ae.reapLocked()

	v := &voice{
		volume: newVolume(src, gain*ae.config.MasterVolume),
		gain:   gain,
		loop:   loop,
	}
	v.ctrl = &beep.Ctrl{Streamer: v.volume}

	ae.nextVoice++
	id := ae.nextVoice
	ae.voices[id] = v

	var stream beep.Streamer = v.ctrl
	if !loop {
		stream = beep.Seq(v.ctrl, beep.Callback(func() { v.done.Store(true) }))
	}

	ae.lockMixer()
	ae.mixer.Add(stream)
	ae.unlockMixer()

	ae.played.Add(1)
	return id, true
}

// SetGain adjusts a live voice; unknown ids are ignored
func (ae *AudioEngine) SetGain(id uint64, gain float64) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	v, ok := ae.voices[id]
	if !ok {
		return
	}
	v.gain = gain

	ae.lockMixer()
	setGain(v.volume, gain*ae.config.MasterVolume)
	ae.unlockMixer()
}

// Stop removes a voice from the mixer; unknown ids are ignored
func (ae *AudioEngine) StopVoice(id uint64) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	v, ok := ae.voices[id]
	if !ok {
		return
	}
	delete(ae.voices, id)

	// A Ctrl without a streamer drains, and the mixer drops it on the next pull
	ae.lockMixer()
	v.ctrl.Streamer = nil
	ae.unlockMixer()
}

// reapLocked forgets one-shot voices that finished playing
func (ae *AudioEngine) reapLocked() {
	for id, v := range ae.voices {
		if v.done.Load() {
			delete(ae.voices, id)
		}
	}
}

// Render pulls samples from the mixer when no device is attached
// Returns false when a device owns the mixer
func (ae *AudioEngine) Render(samples [][2]float64) bool {
	if ae.device.Load() {
		return false
	}
	ae.mixMu.Lock()
	ae.mixer.Stream(samples)
	ae.mixMu.Unlock()
	return true
}

// ActiveVoices returns the number of tracked voices, excluding drained one-shots
func (ae *AudioEngine) ActiveVoices() int {
	ae.mu.Lock()
	defer ae.mu.Unlock()
	ae.reapLocked()
	return len(ae.voices)
}

// ToggleMute toggles mute state, returns true if now enabled
func (ae *AudioEngine) ToggleMute() bool {
	newMute := !ae.muted.Load()
	ae.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsRunning returns true if engine is running (even in silent mode)
func (ae *AudioEngine) IsRunning() bool {
	return ae.running.Load()
}

// SetVolume updates master volume (0.0-1.0) and re-applies it to live voices
func (ae *AudioEngine) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	ae.mu.Lock()
	defer ae.mu.Unlock()
	ae.config.MasterVolume = vol

	ae.lockMixer()
	for _, v := range ae.voices {
		setGain(v.volume, v.gain*vol)
	}
	ae.unlockMixer()
}

// GetStats returns played and dropped counts
func (ae *AudioEngine) GetStats() (played, dropped uint64) {
	return ae.played.Load(), ae.dropped.Load()
}
