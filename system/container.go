package system

import (
	"slices"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// ContainerSystem moves entities in and out of named container slots
type ContainerSystem struct {
	engine.SystemBase

	enabled bool
}

// NewContainerSystem creates the container system
func NewContainerSystem(world *engine.World) *ContainerSystem {
	s := &ContainerSystem{SystemBase: engine.NewSystemBase(world, "container")}
	s.Init()
	return s
}

// Init resets session state
func (s *ContainerSystem) Init() {
	s.enabled = true
}

func (s *ContainerSystem) Name() string {
	return "container"
}

func (s *ContainerSystem) Priority() int {
	return parameter.PriorityContainer
}

func (s *ContainerSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityRemoving,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent ejects a removed entity from every container holding it
func (s *ContainerSystem) HandleEvent(ev event.GameEvent) {
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

	p, ok := ev.Payload.(*event.EntityPayload)
	if !ok {
		return
	}
	for _, c := range s.Component.Container.GetAllEntities() {
		if c == p.Entity {
			continue
		}
		cont, _ := s.Component.Container.GetComponent(c)
		for slot, occupants := range cont.Slots {
			if slices.Contains(occupants, p.Entity) {
				s.Remove(c, slot, p.Entity)
			}
		}
	}
}

func (s *ContainerSystem) Update() {}

// Insert places e into slot of container, raising EventContainerInserted at the container
func (s *ContainerSystem) Insert(container core.Entity, slot string, e core.Entity) bool {
	if !s.enabled || container == e || !s.World.Exists(e) {
		return false
	}
	cont, ok := s.Component.Container.GetComponent(container)
	if !ok {
		return false
	}
	occupants, ok := cont.Slots[slot]
	if !ok || slices.Contains(occupants, e) {
		return false
	}

	cont.Slots[slot] = append(slices.Clone(occupants), e)
	s.Component.Container.SetComponent(container, cont)

	s.World.Raise(event.EventContainerInserted, &event.ContainerPayload{Container: container, Slot: slot, Entity: e})
	return true
}

// Remove takes e out of slot of container, raising EventContainerRemoved at the container
func (s *ContainerSystem) Remove(container core.Entity, slot string, e core.Entity) bool {
	cont, ok := s.Component.Container.GetComponent(container)
	if !ok {
		return false
	}
	occupants := cont.Slots[slot]
	i := slices.Index(occupants, e)
	if i < 0 {
		return false
	}

	cont.Slots[slot] = slices.Delete(slices.Clone(occupants), i, i+1)
	s.Component.Container.SetComponent(container, cont)

	s.World.Raise(event.EventContainerRemoved, &event.ContainerPayload{Container: container, Slot: slot, Entity: e})
	return true
}

// Contains reports whether e occupies slot of container
func (s *ContainerSystem) Contains(container core.Entity, slot string, e core.Entity) bool {
	cont, ok := s.Component.Container.GetComponent(container)
	return ok && cont.Contains(slot, e)
}
