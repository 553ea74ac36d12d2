package component

import (
	"github.com/lixenwraith/vi-garage/core"
)

// HandSlot is one hand of a user, empty when Held is zero
type HandSlot struct {
	Name string
	Held core.Entity
}

// HandsComponent lists the hands of an entity in pickup order
type HandsComponent struct {
	Slots []HandSlot
}

// FreeSlot returns the index of the first empty hand or -1
func (h HandsComponent) FreeSlot() int {
	for i, s := range h.Slots {
		if !s.Held.Valid() {
			return i
		}
	}
	return -1
}

// VirtualItemComponent marks a placeholder occupying a hand on behalf of another entity
type VirtualItemComponent struct {
	BlockingEntity core.Entity // Entity the hand is reserved for (e.g. a vehicle)
	User           core.Entity // Hand owner
}
