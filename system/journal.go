package system

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

type journalRecord struct {
	frame   int64
	name    string
	vehicle core.Entity
	driver  core.Entity
	detail  string
}

// JournalSystem buffers vehicle notifications and writes them to the bridged recorder once per tick
type JournalSystem struct {
	engine.SystemBase

	pending []journalRecord

	statRecorded *atomic.Int64
	statFailed   *atomic.Int64

	enabled bool
}

// NewJournalSystem creates the journal system
func NewJournalSystem(world *engine.World) *JournalSystem {
	s := &JournalSystem{SystemBase: engine.NewSystemBase(world, "journal")}
	s.statRecorded = s.Resource.Status.Ints.Get("journal.recorded")
	s.statFailed = s.Resource.Status.Ints.Get("journal.failed")
	s.Init()
	return s
}

// Init resets session state
func (s *JournalSystem) Init() {
	s.pending = s.pending[:0]
	s.enabled = true
}

func (s *JournalSystem) Name() string {
	return "journal"
}

func (s *JournalSystem) Priority() int {
	return parameter.PriorityJournal
}

func (s *JournalSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventVehicleMounted,
		event.EventVehicleDismounted,
		event.EventVehicleHorn,
		event.EventVehicleSiren,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent buffers vehicle notifications
func (s *JournalSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}

	if !s.enabled {
		return
	}

	rec := journalRecord{frame: ev.Frame, name: ev.Type.String()}
	switch p := ev.Payload.(type) {
	case *event.VehiclePayload:
		rec.vehicle, rec.driver = p.Vehicle, p.Driver
	case *event.VehicleSirenPayload:
		rec.vehicle, rec.driver = p.Vehicle, p.Driver
		rec.detail = fmt.Sprintf("enabled=%t", p.Enabled)
	default:
		return
	}
	s.pending = append(s.pending, rec)
}

// Update flushes buffered records
func (s *JournalSystem) Update() {
	if !s.enabled {
		return
	}
	s.Flush()
}

// Pending returns the number of buffered records
func (s *JournalSystem) Pending() int {
	return len(s.pending)
}

// Flush writes buffered records; without a recorder they are discarded
func (s *JournalSystem) Flush() int {
	if len(s.pending) == 0 {
		return 0
	}

	var recorder engine.JournalRecorder
	if s.Resource.Journal != nil {
		recorder = s.Resource.Journal.Recorder
	}

	written := 0
	for _, rec := range s.pending {
		if recorder == nil {
			break
		}
		if err := recorder.RecordVehicleEvent(rec.frame, rec.name, rec.vehicle, rec.driver, rec.detail); err != nil {
			s.statFailed.Add(1)
			s.Log.Warn().Err(err).Str("event", rec.name).Uint64("vehicle", uint64(rec.vehicle)).Msg("Journal write failed")
			continue
		}
		written++
	}
	s.statRecorded.Add(int64(written))
	s.pending = s.pending[:0]
	return written
}
