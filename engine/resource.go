package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/prototype"
	"github.com/lixenwraith/vi-garage/status"
)

// Resource holds singleton world resources, accessed via World.Resources
type Resource struct {
	// World Resource
	Time     *TimeResource
	Event    *EventQueueResource
	Listener *ListenerResource

	// Telemetry
	Status *status.Registry
	Log    zerolog.Logger

	// Static data
	Prototypes *prototype.Registry

	// Bridged resources from services
	Audio   *AudioResource
	Journal *JournalResource
}

func newResource(queue *event.EventQueue) *Resource {
	return &Resource{
		Time:       &TimeResource{},
		Event:      &EventQueueResource{Queue: queue},
		Listener:   &ListenerResource{},
		Status:     status.NewRegistry(),
		Log:        zerolog.Nop(),
		Prototypes: prototype.Default(),
		Audio:      &AudioResource{},
		Journal:    &JournalResource{},
	}
}

// ServiceBridge routes a service-contributed resource to its typed field
func (r *Resource) ServiceBridge(res any) {
	switch v := res.(type) {
	case *AudioResource:
		r.Audio = v
	case *JournalResource:
		r.Journal = v
	case *prototype.Registry:
		r.Prototypes = v
	}
}

// === World Resources ===

// TimeResource wraps time data for systems
// It is updated by the Scheduler at the start of a tick
type TimeResource struct {
	// GameTime is the simulation clock
	GameTime time.Time

	// DeltaTime is the duration since the last update
	DeltaTime time.Duration

	// FrameNumber is the current frame count
	FrameNumber int64
}

// Update modifies TimeResource fields in-place (zero allocation)
// Must be called under world lock to prevent races with systems reads
func (tr *TimeResource) Update(gameTime time.Time, deltaTime time.Duration, frameNumber int64) {
	tr.GameTime = gameTime
	tr.DeltaTime = deltaTime
	tr.FrameNumber = frameNumber
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}

// ListenerResource names the entity whose position positional audio is heard from
// Zero entity disables attenuation
type ListenerResource struct {
	Entity core.Entity
}

// === Bridged Resources from Service ===

// AudioPlayer defines the minimal audio interface used by game systems
// Voice ids are backend-local; the audio system maps them to stream handles
type AudioPlayer interface {
	Play(sound core.SoundID, loop bool, gain float64) (voice uint64, ok bool)
	SetGain(voice uint64, gain float64)
	StopVoice(voice uint64)
	ToggleMute() bool
	IsMuted() bool
	IsRunning() bool
}

// AudioResource wraps the audio player interface
// Player is nil when no backend is attached
type AudioResource struct {
	Player AudioPlayer
}

// JournalRecorder persists vehicle notifications outside the world
type JournalRecorder interface {
	RecordVehicleEvent(frame int64, name string, vehicle, driver core.Entity, detail string) error
}

// JournalResource wraps the journal recorder
// Recorder is nil when journaling is disabled
type JournalResource struct {
	Recorder JournalRecorder
}
