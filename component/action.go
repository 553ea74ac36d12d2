package component

import (
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/event"
)

// ActionComponent is an instant action instance
// Container is the entity that granted it; AttachedEntity is the performer holding it
type ActionComponent struct {
	Prototype      string
	Name           string
	Container      core.Entity
	AttachedEntity core.Entity
	Event          event.EventType
}

// ActionsComponent lists actions granted to a performer
type ActionsComponent struct {
	Actions []core.Entity
}
