package system

import (
	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/parameter"
)

// HandsSystem picks up and drops held items
// Dropping a placeholder deletes it through the virtual item system
type HandsSystem struct {
	engine.SystemBase

	virtual *VirtualItemSystem
}

// NewHandsSystem creates the hands system
func NewHandsSystem(world *engine.World, virtual *VirtualItemSystem) *HandsSystem {
	s := &HandsSystem{
		SystemBase: engine.NewSystemBase(world, "hands"),
		virtual:    virtual,
	}
	s.Init()
	return s
}

func (s *HandsSystem) Init() {}

func (s *HandsSystem) Name() string {
	return "hands"
}

func (s *HandsSystem) Priority() int {
	return parameter.PriorityHands
}

func (s *HandsSystem) Update() {}

// PickUp places item into the first free hand of user
func (s *HandsSystem) PickUp(user, item core.Entity) bool {
	if user == item || !s.World.Exists(item) || s.heldBy(item).Valid() {
		return false
	}
	hands, ok := s.Component.Hands.GetComponent(user)
	if !ok {
		return false
	}
	slot := hands.FreeSlot()
	if slot < 0 {
		return false
	}

	slots := make([]component.HandSlot, len(hands.Slots))
	copy(slots, hands.Slots)
	slots[slot].Held = item
	hands.Slots = slots
	s.Component.Hands.SetComponent(user, hands)
	return true
}

// Drop empties the given hand of user and returns what it held
func (s *HandsSystem) Drop(user core.Entity, slot int) (core.Entity, bool) {
	hands, ok := s.Component.Hands.GetComponent(user)
	if !ok || slot < 0 || slot >= len(hands.Slots) {
		return core.NoEntity, false
	}
	item := hands.Slots[slot].Held
	if !item.Valid() {
		return core.NoEntity, false
	}

	if s.Component.VirtualItem.HasEntity(item) {
		s.virtual.DeleteVirtualItem(item)
		return item, true
	}

	slots := make([]component.HandSlot, len(hands.Slots))
	copy(slots, hands.Slots)
	slots[slot].Held = core.NoEntity
	hands.Slots = slots
	s.Component.Hands.SetComponent(user, hands)
	return item, true
}

// Held returns the items in user's hands, empty slots skipped
func (s *HandsSystem) Held(user core.Entity) []core.Entity {
	hands, _ := s.Component.Hands.GetComponent(user)
	var out []core.Entity
	for _, slot := range hands.Slots {
		if slot.Held.Valid() {
			out = append(out, slot.Held)
		}
	}
	return out
}

// heldBy returns the entity holding item
func (s *HandsSystem) heldBy(item core.Entity) core.Entity {
	for _, user := range s.Component.Hands.GetAllEntities() {
		hands, _ := s.Component.Hands.GetComponent(user)
		for _, slot := range hands.Slots {
			if slot.Held == item {
				return user
			}
		}
	}
	return core.NoEntity
}
