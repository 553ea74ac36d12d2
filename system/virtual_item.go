package system

import (
	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// VirtualItemSystem manages placeholder items that reserve a user's hands for another entity
type VirtualItemSystem struct {
	engine.SystemBase
}

// NewVirtualItemSystem creates the virtual item system
func NewVirtualItemSystem(world *engine.World) *VirtualItemSystem {
	s := &VirtualItemSystem{SystemBase: engine.NewSystemBase(world, "virtual_item")}
	s.Init()
	return s
}

func (s *VirtualItemSystem) Init() {}

func (s *VirtualItemSystem) Name() string {
	return "virtual_item"
}

func (s *VirtualItemSystem) Priority() int {
	return parameter.PriorityVirtualItem
}

func (s *VirtualItemSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityRemoving,
	}
}

// HandleEvent deletes placeholders whose blocking entity or user is going away
func (s *VirtualItemSystem) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.EntityPayload)
	if !ok {
		return
	}
	if s.Component.VirtualItem.HasEntity(p.Entity) {
		return
	}
	for _, item := range s.Component.VirtualItem.GetAllEntities() {
		vi, ok := s.Component.VirtualItem.GetComponent(item)
		if !ok {
			continue
		}
		if vi.BlockingEntity == p.Entity || vi.User == p.Entity {
			s.DeleteVirtualItem(item)
		}
	}
}

func (s *VirtualItemSystem) Update() {}

// TrySpawnVirtualItemInHand occupies the first free hand of user with a placeholder for blocking
func (s *VirtualItemSystem) TrySpawnVirtualItemInHand(blocking, user core.Entity) (core.Entity, bool) {
	hands, ok := s.Component.Hands.GetComponent(user)
	if !ok {
		return core.NoEntity, false
	}
	slot := hands.FreeSlot()
	if slot < 0 {
		return core.NoEntity, false
	}

	item := s.World.CreateEntity()
	s.Component.VirtualItem.SetComponent(item, component.VirtualItemComponent{
		BlockingEntity: blocking,
		User:           user,
	})

	slots := make([]component.HandSlot, len(hands.Slots))
	copy(slots, hands.Slots)
	slots[slot].Held = item
	hands.Slots = slots
	s.Component.Hands.SetComponent(user, hands)
	return item, true
}

// DeleteInHandsMatching removes every placeholder in user's hands reserved for blocking
func (s *VirtualItemSystem) DeleteInHandsMatching(user, blocking core.Entity) int {
	hands, ok := s.Component.Hands.GetComponent(user)
	if !ok {
		return 0
	}

	var matching []core.Entity
	for _, slot := range hands.Slots {
		if vi, ok := s.Component.VirtualItem.GetComponent(slot.Held); ok && vi.BlockingEntity == blocking {
			matching = append(matching, slot.Held)
		}
	}
	for _, item := range matching {
		s.DeleteVirtualItem(item)
	}
	return len(matching)
}

// CountInHands returns the placeholders user holds for blocking
func (s *VirtualItemSystem) CountInHands(user, blocking core.Entity) int {
	hands, _ := s.Component.Hands.GetComponent(user)
	n := 0
	for _, slot := range hands.Slots {
		if vi, ok := s.Component.VirtualItem.GetComponent(slot.Held); ok && vi.BlockingEntity == blocking {
			n++
		}
	}
	return n
}

// DeleteVirtualItem frees the hand, notifies the blocking entity and destroys the placeholder
func (s *VirtualItemSystem) DeleteVirtualItem(item core.Entity) {
	vi, ok := s.Component.VirtualItem.GetComponent(item)
	if !ok {
		return
	}
	// Drop the marker first so re-entrant deletes of the same item are no-ops
	s.Component.VirtualItem.RemoveEntity(item)

	if hands, ok := s.Component.Hands.GetComponent(vi.User); ok {
		slots := make([]component.HandSlot, len(hands.Slots))
		copy(slots, hands.Slots)
		for i := range slots {
			if slots[i].Held == item {
				slots[i].Held = core.NoEntity
			}
		}
		hands.Slots = slots
		s.Component.Hands.SetComponent(vi.User, hands)
	}

	s.World.Raise(event.EventVirtualItemDeleted, &event.VirtualItemDeletedPayload{
		Item:           item,
		BlockingEntity: vi.BlockingEntity,
		User:           vi.User,
	})
	s.World.DestroyEntity(item)
}
