package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// AudioParams controls playback of a positional sound
type AudioParams struct {
	Volume      float64 // Linear gain at the source
	Loop        bool
	MaxDistance float64 // Cells; silent beyond
}

// DefaultAudioParams returns unity, non-looping params with the default audible radius
func DefaultAudioParams() AudioParams {
	return AudioParams{
		Volume:      1.0,
		MaxDistance: parameter.DefaultMaxDistance,
	}
}

// WithLoop returns a copy with looping set
func (p AudioParams) WithLoop(loop bool) AudioParams {
	p.Loop = loop
	return p
}

// WithMaxDistance returns a copy with the audible radius set
func (p AudioParams) WithMaxDistance(d float64) AudioParams {
	p.MaxDistance = d
	return p
}

// audioStream is a tracked loop anchored at a source entity
type audioStream struct {
	sound  core.SoundID
	source core.Entity
	params AudioParams
	voice  uint64 // Backend voice, zero when no backend accepted it
	gain   float64
}

// AudioSystem owns stream handles and positional gain
// Playback is forwarded to the bridged AudioPlayer when one is attached
type AudioSystem struct {
	engine.SystemBase

	streams    map[core.StreamHandle]*audioStream
	nextHandle core.StreamHandle

	statPlayed  *atomic.Int64
	statStreams *atomic.Int64

	enabled bool
}

// NewAudioSystem creates the audio system
func NewAudioSystem(world *engine.World) *AudioSystem {
	s := &AudioSystem{
		SystemBase: engine.NewSystemBase(world, "audio"),
		streams:    make(map[core.StreamHandle]*audioStream),
	}
	s.statPlayed = s.Resource.Status.Ints.Get("audio.played")
	s.statStreams = s.Resource.Status.Ints.Get("audio.streams")
	s.Init()
	return s
}

// Init resets session state, stopping every live stream
func (s *AudioSystem) Init() {
	for h := range s.streams {
		s.Stop(h)
	}
	s.enabled = true
}

func (s *AudioSystem) Name() string {
	return "audio"
}

func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityRemoving,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent stops loops whose source is going away
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}

	p, ok := ev.Payload.(*event.EntityPayload)
	if !ok {
		return
	}
	for h, st := range s.streams {
		if st.source == p.Entity {
			s.Stop(h)
		}
	}
}

func (s *AudioSystem) player() engine.AudioPlayer {
	if s.Resource.Audio == nil || s.Resource.Audio.Player == nil {
		return nil
	}
	if !s.Resource.Audio.Player.IsRunning() {
		return nil
	}
	return s.Resource.Audio.Player
}

// PlayNear plays sound at source, audible to listeners within params.MaxDistance
// Looping sounds get a tracked handle that must be released with Stop
// One-shots return a fresh handle that is not tracked
func (s *AudioSystem) PlayNear(sound core.SoundID, source core.Entity, params AudioParams) core.StreamHandle {
	if !sound.Set() {
		return core.NoStream
	}

	s.nextHandle++
	h := s.nextHandle

	gain := s.gainAt(source, params)
	var voice uint64
	if s.enabled {
		if p := s.player(); p != nil {
			if v, ok := p.Play(sound, params.Loop, gain); ok {
				voice = v
			}
		}
	}
	s.statPlayed.Add(1)

	if params.Loop {
		s.streams[h] = &audioStream{
			sound:  sound,
			source: source,
			params: params,
			voice:  voice,
			gain:   gain,
		}
		s.statStreams.Store(int64(len(s.streams)))
	}
	return h
}

// Stop releases a stream; always returns NoStream so callers can clear their handle in one assignment
func (s *AudioSystem) Stop(h core.StreamHandle) core.StreamHandle {
	st, ok := s.streams[h]
	if !ok {
		return core.NoStream
	}
	delete(s.streams, h)
	s.statStreams.Store(int64(len(s.streams)))

	if st.voice != 0 {
		if p := s.player(); p != nil {
			p.StopVoice(st.voice)
		}
	}
	return core.NoStream
}

// Playing reports whether h is a live tracked stream
func (s *AudioSystem) Playing(h core.StreamHandle) bool {
	_, ok := s.streams[h]
	return ok
}

// StreamCount returns the number of live tracked streams
func (s *AudioSystem) StreamCount() int {
	return len(s.streams)
}

// Gain returns the current gain of a tracked stream
func (s *AudioSystem) Gain(h core.StreamHandle) (float64, bool) {
	st, ok := s.streams[h]
	if !ok {
		return 0, false
	}
	return st.gain, true
}

// Update re-attenuates live loops as sources and the listener move
func (s *AudioSystem) Update() {
	if !s.enabled {
		return
	}

	p := s.player()
	for _, st := range s.streams {
		gain := s.gainAt(st.source, st.params)
		if gain == st.gain {
			continue
		}
		st.gain = gain
		if p != nil && st.voice != 0 {
			p.SetGain(st.voice, gain)
		}
	}
}

// gainAt applies linear distance falloff between source and listener
func (s *AudioSystem) gainAt(source core.Entity, params AudioParams) float64 {
	listener := s.Resource.Listener.Entity
	if !listener.Valid() {
		return params.Volume
	}

	src, ok := s.Component.Position.GetComponent(source)
	if !ok {
		return params.Volume
	}
	dst, ok := s.Component.Position.GetComponent(listener)
	if !ok {
		return params.Volume
	}

	maxDist := params.MaxDistance
	if maxDist <= 0 {
		maxDist = parameter.DefaultMaxDistance
	}

	d := math.Hypot(float64(src.X-dst.X), float64(src.Y-dst.Y))
	falloff := 1 - d/maxDist
	if falloff < 0 {
		falloff = 0
	}
	return params.Volume * falloff
}
