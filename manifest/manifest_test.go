package manifest

import (
	"testing"

	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/system"
)

func TestInstallBuildsActiveSystems(t *testing.T) {
	world := engine.NewWorld()
	if err := Install(world); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	for _, name := range ActiveSystems() {
		if _, ok := world.System(name); !ok {
			t.Errorf("Expected system %s installed", name)
		}
	}

	sys, _ := world.System("vehicle")
	if _, ok := sys.(*system.VehicleSystem); !ok {
		t.Errorf("Expected *system.VehicleSystem, got %T", sys)
	}

	// Systems run in priority order regardless of manifest order
	systems := world.Systems()
	for i := 1; i < len(systems); i++ {
		if systems[i-1].Priority() > systems[i].Priority() {
			t.Errorf("Expected priority order, %s before %s", systems[i-1].Name(), systems[i].Name())
		}
	}
}

func TestInstalledWorldMountsDriver(t *testing.T) {
	world := engine.NewWorld()
	if err := Install(world); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	lookup := func(name string) engine.System {
		s, _ := world.System(name)
		return s
	}
	spawn := lookup("spawn").(*system.SpawnSystem)
	buckle := lookup("buckle").(*system.BuckleSystem)
	container := lookup("container").(*system.ContainerSystem)

	human := spawn.MustSpawn("Human", 0, 0)
	cart := spawn.MustSpawn("Janicart", 1, 0)
	if !buckle.TryBuckle(human, cart) {
		t.Fatal("Expected buckle to succeed")
	}
	vc, _ := world.Components.Vehicle.GetComponent(cart)
	if !container.Insert(cart, vc.SeatContainer, human) {
		t.Fatal("Expected seat insert to succeed")
	}

	vc, _ = world.Components.Vehicle.GetComponent(cart)
	if vc.Driver != human || !vc.EngineRunning {
		t.Errorf("Expected mounted driver %d, got %+v", human, vc)
	}
	if got := world.Resources.Status.Ints.Get("vehicle.mounts").Load(); got != 1 {
		t.Errorf("Expected 1 mount, got %d", got)
	}
}

func TestServicesHub(t *testing.T) {
	hub, err := NewHub()
	if err != nil {
		t.Fatalf("NewHub failed: %v", err)
	}
	names := hub.Names()
	if len(names) != len(ActiveServices()) {
		t.Errorf("Expected %d services, got %v", len(ActiveServices()), names)
	}
}
