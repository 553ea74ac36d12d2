package component

import (
	"github.com/lixenwraith/vi-garage/core"
)

// ContainerComponent holds named container slots, each with its occupants
type ContainerComponent struct {
	Slots map[string][]core.Entity
}

// Contains reports whether e is in the named slot
func (c ContainerComponent) Contains(slot string, e core.Entity) bool {
	for _, occ := range c.Slots[slot] {
		if occ == e {
			return true
		}
	}
	return false
}
