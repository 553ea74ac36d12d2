package parameter

// System Execution Priorities (lower runs first)
// Handler registration follows the same order, so collaborators that raise
// events see the vehicle system react within the same dispatch
const (
	PrioritySpawn       = 10
	PriorityAccess      = 20
	PriorityAction      = 30
	PriorityBuckle      = 40
	PriorityContainer   = 50
	PriorityVirtualItem = 60
	PriorityHands       = 65
	PriorityVehicle     = 100 // After collaborators, before movement
	PriorityMover       = 200 // Applies intents after relays are settled
	PriorityAppearance  = 300
	PriorityAudio       = 400 // Distance updates after movement
	PriorityJournal     = 900 // Observes notifications last
)
