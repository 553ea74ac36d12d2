package system

import (
	"fmt"

	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// SpawnSystem builds entities from prototypes
type SpawnSystem struct {
	engine.SystemBase
}

// NewSpawnSystem creates the spawn system
func NewSpawnSystem(world *engine.World) *SpawnSystem {
	s := &SpawnSystem{SystemBase: engine.NewSystemBase(world, "spawn")}
	s.Init()
	return s
}

func (s *SpawnSystem) Init() {}

func (s *SpawnSystem) Name() string {
	return "spawn"
}

func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

func (s *SpawnSystem) Update() {}

// Spawn creates an entity from the prototype protoID at (x, y) and raises EventEntityCreated
func (s *SpawnSystem) Spawn(protoID string, x, y int) (core.Entity, error) {
	proto, err := s.Resource.Prototypes.Get(protoID)
	if err != nil {
		return core.NoEntity, fmt.Errorf("spawn: %w", err)
	}

	eb := s.World.NewEntity()
	engine.With(eb, s.Component.Meta, component.MetaComponent{
		Name:      proto.Name,
		Prototype: proto.ID,
		Glyph:     proto.Rune(),
	})
	engine.With(eb, s.Component.Position, component.PositionComponent{X: x, Y: y})

	slots := make(map[string][]core.Entity, len(proto.Container)+1)
	for _, name := range proto.Container {
		slots[name] = nil
	}

	if v := proto.Vehicle; v != nil {
		seat := v.Seat
		if seat == "" {
			seat = parameter.DefaultSeatContainer
		}
		slots[seat] = nil
		engine.With(eb, s.Component.Vehicle, component.VehicleComponent{
			HornSound:     core.SoundID(v.HornSound),
			SirenSound:    core.SoundID(v.SirenSound),
			RequiredHands: v.RequiredHands,
			SeatContainer: seat,
		})
	}

	// Vehicles always carry an access set so a mounted driver's tags have somewhere to go
	if len(proto.Access) > 0 || proto.Vehicle != nil {
		engine.With(eb, s.Component.Access, component.NewAccessComponent(proto.Access...))
	}

	if proto.Hands > 0 {
		hands := component.HandsComponent{Slots: make([]component.HandSlot, proto.Hands)}
		for i := range hands.Slots {
			hands.Slots[i].Name = handName(i)
		}
		engine.With(eb, s.Component.Hands, hands)
	}

	if proto.Buckle {
		engine.With(eb, s.Component.Buckle, component.BuckleComponent{})
	}
	if proto.Strap != nil {
		engine.With(eb, s.Component.Strap, component.StrapComponent{MaxBuckled: proto.Strap.MaxBuckled})
	}

	if proto.MobMover {
		engine.With(eb, s.Component.MobMover, component.MobMoverComponent{})
		engine.With(eb, s.Component.InputMover, component.InputMoverComponent{})
	}

	if len(slots) > 0 {
		engine.With(eb, s.Component.Container, component.ContainerComponent{Slots: slots})
	}

	e := eb.Build()
	s.Log.Debug().Str("prototype", proto.ID).Uint64("entity", uint64(e)).Int("x", x).Int("y", y).Msg("Spawned")
	s.World.Raise(event.EventEntityCreated, &event.EntityPayload{Entity: e})
	return e, nil
}

// MustSpawn is Spawn for fixtures with known prototypes
func (s *SpawnSystem) MustSpawn(protoID string, x, y int) core.Entity {
	e, err := s.Spawn(protoID, x, y)
	if err != nil {
		panic(err)
	}
	return e
}

func handName(i int) string {
	switch i {
	case 0:
		return "left"
	case 1:
		return "right"
	}
	return fmt.Sprintf("hand%d", i+1)
}

