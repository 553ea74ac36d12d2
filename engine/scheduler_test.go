package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/vi-garage/event"
)

func TestSchedulerTickOrder(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockTimeProvider(start)
	world := NewWorld()

	var log []string
	sys := &recordingSystem{
		name:  "sys",
		log:   &log,
		types: []event.EventType{event.EventVehicleMounted, event.EventVehicleDismounted},
	}
	sys.onEvent = func(ev event.GameEvent) {
		log = append(log, ev.Type.String())
	}
	world.AddSystem(sys)

	// Queued before the tick: delivered before Update
	world.PushEvent(event.EventVehicleMounted, &event.VehiclePayload{})

	sched := NewScheduler(world, clock, 50*time.Millisecond)
	clock.Advance(50 * time.Millisecond)
	sched.Tick()

	expected := []string{"EventVehicleMounted", "sys"}
	if len(log) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, log)
	}
	for i := range expected {
		if log[i] != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, log[i])
		}
	}

	if world.Resources.Time.FrameNumber != 1 {
		t.Errorf("Expected frame 1, got %d", world.Resources.Time.FrameNumber)
	}
	if !world.Resources.Time.GameTime.Equal(start.Add(50 * time.Millisecond)) {
		t.Errorf("Expected game time from clock, got %v", world.Resources.Time.GameTime)
	}
	if sched.TickCount() != 1 {
		t.Errorf("Expected 1 tick, got %d", sched.TickCount())
	}
	if got := world.Resources.Status.Ints.Get("engine.events").Load(); got != 1 {
		t.Errorf("Expected 1 dispatched event, got %d", got)
	}

	select {
	case <-sched.TickDone():
	default:
		t.Error("Expected tick done signal")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	world := NewWorld()
	sched := NewScheduler(world, NewTimeProvider(), 5*time.Millisecond)

	sched.Start()
	select {
	case <-sched.TickDone():
	case <-time.After(time.Second):
		t.Fatal("Expected a tick within one second")
	}
	sched.Stop()
	sched.Stop()

	ticks := sched.TickCount()
	time.Sleep(20 * time.Millisecond)
	if sched.TickCount() != ticks {
		t.Error("Expected no ticks after Stop")
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, mock.Now())
	}
	mock.Advance(time.Hour)
	mock.Advance(30 * time.Minute)
	if expected := start.Add(90 * time.Minute); !mock.Now().Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, mock.Now())
	}
}
