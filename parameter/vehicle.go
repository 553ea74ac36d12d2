package parameter

// Action prototype identifiers, resolvable by name through the action system
const (
	HornActionID  = "ActionHorn"
	SirenActionID = "ActionSiren"
)

// Vehicle Behavior
const (
	// SirenMaxDistance is the audible radius of a looping siren in cells
	SirenMaxDistance = 5.0

	// DefaultSeatContainer is the container slot treated as the driver seat
	DefaultSeatContainer = "vehicle_seat"

	// AppearanceVehicleAnimated is the appearance key toggled while a driver is mounted
	AppearanceVehicleAnimated = "vehicle.animated"
)
