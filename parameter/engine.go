package parameter

import "time"

// Simulation Timing
const (
	// TickInterval is the default fixed simulation step
	TickInterval = 50 * time.Millisecond

	// MaxTickLag bounds catch-up after a stall before the deadline is reset
	MaxTickLag = 2 * TickInterval
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047

	// StoreInitialCapacity pre-sizes entity lists in component stores
	StoreInitialCapacity = 64
)

// Event Dispatch
const (
	// MaxDispatchPasses bounds cascading notifications drained in a single DispatchEvents call
	MaxDispatchPasses = 8
)
