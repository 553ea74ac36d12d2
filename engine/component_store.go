package engine

import (
	"github.com/lixenwraith/vi-garage/component"
)

// ComponentStore provides typed component stores
// Created once with the world; pointers remain valid for the world's lifetime
type ComponentStore struct {
	// Identity & placement
	Meta     *Store[component.MetaComponent]
	Position *Store[component.PositionComponent]

	// Vehicle
	Vehicle *Store[component.VehicleComponent]

	// Collaborators
	Access      *Store[component.AccessComponent]
	Hands       *Store[component.HandsComponent]
	VirtualItem *Store[component.VirtualItemComponent]
	Buckle      *Store[component.BuckleComponent]
	Strap       *Store[component.StrapComponent]
	Container   *Store[component.ContainerComponent]
	Appearance  *Store[component.AppearanceComponent]

	// Actions
	Action  *Store[component.ActionComponent]
	Actions *Store[component.ActionsComponent]

	// Movement
	MobMover    *Store[component.MobMoverComponent]
	InputMover  *Store[component.InputMoverComponent]
	Relay       *Store[component.RelayInputMoverComponent]
	RelayTarget *Store[component.MovementRelayTargetComponent]
}

// newComponentStore allocates every store and returns them with their type-erased view
func newComponentStore() (ComponentStore, []AnyStore) {
	cs := ComponentStore{
		Meta:     NewStore[component.MetaComponent](),
		Position: NewStore[component.PositionComponent](),

		Vehicle: NewStore[component.VehicleComponent](),

		Access:      NewStore[component.AccessComponent](),
		Hands:       NewStore[component.HandsComponent](),
		VirtualItem: NewStore[component.VirtualItemComponent](),
		Buckle:      NewStore[component.BuckleComponent](),
		Strap:       NewStore[component.StrapComponent](),
		Container:   NewStore[component.ContainerComponent](),
		Appearance:  NewStore[component.AppearanceComponent](),

		Action:  NewStore[component.ActionComponent](),
		Actions: NewStore[component.ActionsComponent](),

		MobMover:    NewStore[component.MobMoverComponent](),
		InputMover:  NewStore[component.InputMoverComponent](),
		Relay:       NewStore[component.RelayInputMoverComponent](),
		RelayTarget: NewStore[component.MovementRelayTargetComponent](),
	}

	all := []AnyStore{
		cs.Meta, cs.Position,
		cs.Vehicle,
		cs.Access, cs.Hands, cs.VirtualItem, cs.Buckle, cs.Strap, cs.Container, cs.Appearance,
		cs.Action, cs.Actions,
		cs.MobMover, cs.InputMover, cs.Relay, cs.RelayTarget,
	}
	return cs, all
}
