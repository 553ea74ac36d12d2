package event

// EventType represents the type of game event
type EventType int

const (
	// Zero is reserved so an unset type never matches a handler
	EventNone EventType = iota

	// === Entity Lifecycle ===

	// EventEntityCreated signals an entity finished construction with its components
	// Trigger: SpawnSystem after prototype build | Delivery: immediate
	// Consumer: VehicleSystem (initial appearance) | Payload: *EntityPayload
	EventEntityCreated

	// EventEntityRemoving signals an entity is about to lose all components
	// Trigger: World.DestroyEntity before store teardown | Delivery: immediate
	// Consumer: VehicleSystem (forced dismount) | Payload: *EntityPayload
	EventEntityRemoving

	// === Buckle ===

	// EventBuckleAttempt asks strap owners whether a buckle may proceed
	// Trigger: BuckleSystem.TryBuckle | Delivery: immediate, cancellable
	// Consumer: VehicleSystem (occupancy, hand reservation) | Payload: *BuckleAttemptPayload
	EventBuckleAttempt

	// EventBuckled confirms a completed buckle
	// Trigger: BuckleSystem.TryBuckle after the attempt passed | Delivery: immediate
	// Consumer: VehicleSystem (driver assignment) | Payload: *BucklePayload
	EventBuckled

	// EventUnbuckled confirms a completed unbuckle
	// Trigger: BuckleSystem.TryUnbuckle | Delivery: immediate
	// Consumer: VehicleSystem (dismount) | Payload: *BucklePayload
	EventUnbuckled

	// === Container ===

	// EventContainerInserted signals an entity entered a container slot
	// Trigger: ContainerSystem.Insert | Delivery: immediate
	// Consumer: VehicleSystem (engine start) | Payload: *ContainerPayload
	EventContainerInserted

	// EventContainerRemoved signals an entity left a container slot
	// Trigger: ContainerSystem.Remove | Delivery: immediate
	// Consumer: VehicleSystem (engine stop) | Payload: *ContainerPayload
	EventContainerRemoved

	// === Hands ===

	// EventVirtualItemDeleted signals a placeholder item left its user's hand
	// Trigger: VirtualItemSystem deletions | Delivery: immediate, at the blocking entity
	// Consumer: VehicleSystem (forced dismount) | Payload: *VirtualItemDeletedPayload
	EventVirtualItemDeleted

	// === Actions ===

	// EventHornAction is raised when a performer triggers the horn action
	// Trigger: ActionSystem.PerformAction | Delivery: immediate, handled flag
	// Consumer: VehicleSystem | Payload: *ActionPayload
	EventHornAction

	// EventSirenAction is raised when a performer triggers the siren action
	// Trigger: ActionSystem.PerformAction | Delivery: immediate, handled flag
	// Consumer: VehicleSystem | Payload: *ActionPayload
	EventSirenAction

	// === Vehicle Notifications ===

	// EventVehicleMounted signals a driver took control of a vehicle
	// Trigger: VehicleSystem mount | Delivery: queued
	// Consumer: JournalSystem | Payload: *VehiclePayload
	EventVehicleMounted

	// EventVehicleDismounted signals a driver released a vehicle
	// Trigger: VehicleSystem dismount | Delivery: queued
	// Consumer: JournalSystem | Payload: *VehiclePayload
	EventVehicleDismounted

	// EventVehicleHorn signals a horn was sounded
	// Trigger: VehicleSystem horn action | Delivery: queued
	// Consumer: JournalSystem | Payload: *VehiclePayload
	EventVehicleHorn

	// EventVehicleSiren signals the siren loop was toggled
	// Trigger: VehicleSystem siren action | Delivery: queued
	// Consumer: JournalSystem | Payload: *VehicleSirenPayload
	EventVehicleSiren

	// === Meta ===

	// EventMetaSystemCommandRequest enables or disables a system by name
	// Trigger: Sandbox, tests | Delivery: queued
	// Consumer: All toggleable systems | Payload: *MetaSystemCommandPayload
	EventMetaSystemCommandRequest

	eventTypeCount
)

// GameEvent represents a single game event with associated metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
