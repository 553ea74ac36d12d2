package component

import (
	"github.com/lixenwraith/vi-garage/core"
)

// VehicleComponent carries per-vehicle driving state
// Zero references mean absent: no driver, no stream, no granted action
type VehicleComponent struct {
	// Occupancy
	Driver        core.Entity
	EngineRunning bool // Tracks seat container occupancy, not buckle state

	// Audio cues, empty when the vehicle has no horn/siren
	HornSound  core.SoundID
	SirenSound core.SoundID

	// Siren loop state
	SirenEnabled bool
	SirenStream  core.StreamHandle

	// Action grants held by the current driver
	HornAction  core.Entity
	SirenAction core.Entity

	// RequiredHands is the number of driver hand slots blocked while driving
	RequiredHands int

	// SeatContainer names the container slot holding the driver
	SeatContainer string
}

// Occupied reports whether a driver is assigned
func (v VehicleComponent) Occupied() bool {
	return v.Driver.Valid()
}
