package event

import (
	"github.com/lixenwraith/vi-garage/core"
)

// EntityPayload identifies the entity a lifecycle event is about
type EntityPayload struct {
	Entity core.Entity `yaml:"entity"`
}

// BuckleAttemptPayload is raised at the strap before a buckle commits
// Handlers set Cancelled to veto; the buckle system reads it back
type BuckleAttemptPayload struct {
	Strap     core.Entity `yaml:"strap"`  // Entity being buckled to
	Buckle    core.Entity `yaml:"buckle"` // Entity buckling in
	Cancelled bool        `yaml:"-"`
}

// BucklePayload confirms a buckle or unbuckle
type BucklePayload struct {
	Strap  core.Entity `yaml:"strap"`
	Buckle core.Entity `yaml:"buckle"`
}

// ContainerPayload describes an insert into or removal from a container slot
type ContainerPayload struct {
	Container core.Entity `yaml:"container"`
	Slot      string      `yaml:"slot"`
	Entity    core.Entity `yaml:"entity"`
}

// VirtualItemDeletedPayload is raised at the blocking entity when a placeholder goes away
type VirtualItemDeletedPayload struct {
	Item           core.Entity `yaml:"item"`
	BlockingEntity core.Entity `yaml:"blocking_entity"`
	User           core.Entity `yaml:"user"`
}

// ActionPayload carries an instant action invocation
// Handlers set Handled once they consume the action
type ActionPayload struct {
	Action    core.Entity `yaml:"action"`
	Performer core.Entity `yaml:"performer"`
	Source    core.Entity `yaml:"source"` // Entity that granted the action
	Handled   bool        `yaml:"-"`
}

// VehiclePayload identifies a vehicle and its (former) driver
type VehiclePayload struct {
	Vehicle core.Entity `yaml:"vehicle"`
	Driver  core.Entity `yaml:"driver"`
}

// VehicleSirenPayload reports the siren state after a toggle
type VehicleSirenPayload struct {
	Vehicle core.Entity `yaml:"vehicle"`
	Driver  core.Entity `yaml:"driver"`
	Enabled bool        `yaml:"enabled"`
}

// MetaSystemCommandPayload toggles a named system
type MetaSystemCommandPayload struct {
	SystemName string `yaml:"system"`
	Enabled    bool   `yaml:"enabled"`
}

// Target returns the entity a directed event is delivered to
// Handlers filter on it to emulate per-entity subscriptions
func Target(ev GameEvent) core.Entity {
	switch p := ev.Payload.(type) {
	case *EntityPayload:
		return p.Entity
	case *BuckleAttemptPayload:
		return p.Strap
	case *BucklePayload:
		return p.Strap
	case *ContainerPayload:
		return p.Container
	case *VirtualItemDeletedPayload:
		return p.BlockingEntity
	case *ActionPayload:
		return p.Source
	case *VehiclePayload:
		return p.Vehicle
	case *VehicleSirenPayload:
		return p.Vehicle
	}
	return core.NoEntity
}
