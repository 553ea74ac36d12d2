package component

import (
	"github.com/lixenwraith/vi-garage/core"
)

// PositionComponent is a grid cell location
type PositionComponent struct {
	X, Y int
}

// MobMoverComponent marks entities able to drive their own movement
// Only mob movers can take control of a vehicle
type MobMoverComponent struct{}

// InputMoverComponent holds the pending movement intent of an entity
type InputMoverComponent struct {
	DX, DY int
}

// RelayInputMoverComponent redirects the owner's movement intent to RelayEntity
type RelayInputMoverComponent struct {
	RelayEntity core.Entity
}

// MovementRelayTargetComponent marks an entity receiving relayed input
type MovementRelayTargetComponent struct {
	Source core.Entity
}
