package event

import (
	"github.com/lixenwraith/vi-garage/core"
)

// EmitVehicle queues a vehicle notification
func EmitVehicle(q *EventQueue, et EventType, vehicle, driver core.Entity, frame int64) {
	q.Push(GameEvent{
		Type:    et,
		Payload: &VehiclePayload{Vehicle: vehicle, Driver: driver},
		Frame:   frame,
	})
}

// EmitSystemCommand queues a request to enable or disable a system by name
func EmitSystemCommand(q *EventQueue, system string, enabled bool, frame int64) {
	q.Push(GameEvent{
		Type:    EventMetaSystemCommandRequest,
		Payload: &MetaSystemCommandPayload{SystemName: system, Enabled: enabled},
		Frame:   frame,
	})
}
