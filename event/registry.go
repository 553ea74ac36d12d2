package event

import (
	"reflect"
	"sync"
)

var (
	registryMu    sync.RWMutex
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &VehiclePayload{})
// Pass nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType, "Unknown" if unregistered
func GetEventName(et EventType) string {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	registryMu.RLock()
	t, ok := typeToPayload[et]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// InitRegistry populates the registry with all game events
// Safe to call repeatedly; lookups call it lazily
func InitRegistry() {
	registryOnce.Do(func() {
		// Lifecycle
		RegisterType("EventEntityCreated", EventEntityCreated, &EntityPayload{})
		RegisterType("EventEntityRemoving", EventEntityRemoving, &EntityPayload{})

		// Buckle
		RegisterType("EventBuckleAttempt", EventBuckleAttempt, &BuckleAttemptPayload{})
		RegisterType("EventBuckled", EventBuckled, &BucklePayload{})
		RegisterType("EventUnbuckled", EventUnbuckled, &BucklePayload{})

		// Container
		RegisterType("EventContainerInserted", EventContainerInserted, &ContainerPayload{})
		RegisterType("EventContainerRemoved", EventContainerRemoved, &ContainerPayload{})

		// Hands
		RegisterType("EventVirtualItemDeleted", EventVirtualItemDeleted, &VirtualItemDeletedPayload{})

		// Actions
		RegisterType("EventHornAction", EventHornAction, &ActionPayload{})
		RegisterType("EventSirenAction", EventSirenAction, &ActionPayload{})

		// Vehicle notifications
		RegisterType("EventVehicleMounted", EventVehicleMounted, &VehiclePayload{})
		RegisterType("EventVehicleDismounted", EventVehicleDismounted, &VehiclePayload{})
		RegisterType("EventVehicleHorn", EventVehicleHorn, &VehiclePayload{})
		RegisterType("EventVehicleSiren", EventVehicleSiren, &VehicleSirenPayload{})

		// Meta
		RegisterType("EventMetaSystemCommandRequest", EventMetaSystemCommandRequest, &MetaSystemCommandPayload{})
	})
}

// String returns the registered name of the event type
func (e EventType) String() string {
	return GetEventName(e)
}
