package engine

// System is the interface that all ECS systems must implement
type System interface {
	// Name returns the identifier used by the registry and system commands
	Name() string

	// Priority orders Update calls, lower runs first
	Priority() int

	// Init resets session state
	Init()

	// Update runs once per tick
	Update()
}
