package service

// Service is a long-lived subsystem owned by the Hub: the audio backend, the vehicle journal
// The Hub calls Init on every service in dependency order, then Start, and Stop in reverse on shutdown
type Service interface {
	Name() string

	// Dependencies names services whose Init must run first, nil when none
	Dependencies() []string

	// Init picks its own config out of args by type and ignores the rest
	Init(args ...any) error

	// Start opens devices or connections
	// Audio degrades to silent mode internally; the journal reports open failures
	Start() error

	// Stop releases resources, safe to call repeatedly
	Stop() error
}

// ResourcePublisher hands a service-owned resource to the world, which routes it by type
type ResourcePublisher func(resource any)

// ResourceContributor is the optional interface for services that expose an API to systems
type ResourceContributor interface {
	Contribute(publish ResourcePublisher)
}
