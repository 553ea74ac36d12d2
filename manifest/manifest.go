package manifest

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/registry"
	"github.com/lixenwraith/vi-garage/system"
)

var registerOnce sync.Once

// RegisterSystems registers all system factories with the registry
func RegisterSystems() {
	registry.RegisterSystem("spawn", func(w any) any {
		return system.NewSpawnSystem(w.(*engine.World))
	})
	registry.RegisterSystem("access", func(w any) any {
		return system.NewAccessSystem(w.(*engine.World))
	})
	registry.RegisterSystem("action", func(w any) any {
		return system.NewActionSystem(w.(*engine.World))
	})
	registry.RegisterSystem("appearance", func(w any) any {
		return system.NewAppearanceSystem(w.(*engine.World))
	})
	registry.RegisterSystem("audio", func(w any) any {
		return system.NewAudioSystem(w.(*engine.World))
	})
	registry.RegisterSystem("buckle", func(w any) any {
		return system.NewBuckleSystem(w.(*engine.World))
	})
	registry.RegisterSystem("container", func(w any) any {
		return system.NewContainerSystem(w.(*engine.World))
	})
	registry.RegisterSystem("mover", func(w any) any {
		return system.NewMoverSystem(w.(*engine.World))
	})
	registry.RegisterSystem("virtual_item", func(w any) any {
		return system.NewVirtualItemSystem(w.(*engine.World))
	})
	registry.RegisterSystem("hands", func(w any) any {
		world := w.(*engine.World)
		sys, ok := world.System("virtual_item")
		if !ok {
			return fmt.Errorf("hands requires virtual_item")
		}
		return system.NewHandsSystem(world, sys.(*system.VirtualItemSystem))
	})
	registry.RegisterSystem("vehicle", func(w any) any {
		world := w.(*engine.World)
		deps, err := system.LookupVehicleDeps(world)
		if err != nil {
			return err
		}
		return system.NewVehicleSystem(world, deps)
	})
	registry.RegisterSystem("journal", func(w any) any {
		return system.NewJournalSystem(w.(*engine.World))
	})
}

// ActiveSystems returns the ordered list of systems to instantiate
// Order matters for event handler registration priority, collaborators precede the vehicle system
func ActiveSystems() []string {
	return []string{
		"spawn",
		"access",
		"action",
		"appearance",
		"audio",
		"buckle",
		"container",
		"mover",
		"virtual_item",
		"hands",
		"vehicle",
		"journal",
	}
}

// Install builds every active system and adds it to w in manifest order
func Install(w *engine.World) error {
	registerOnce.Do(RegisterSystems)

	for _, name := range ActiveSystems() {
		factory, ok := registry.GetSystem(name)
		if !ok {
			return fmt.Errorf("system %q not registered", name)
		}
		switch v := factory(w).(type) {
		case error:
			return fmt.Errorf("build system %q: %w", name, v)
		case engine.System:
			w.AddSystem(v)
		default:
			return fmt.Errorf("system %q factory returned %T", name, v)
		}
	}
	return nil
}
