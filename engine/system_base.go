package engine

import (
	"github.com/rs/zerolog"
)

// SystemBase provides common dependency for all system
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	World     *World
	Resource  *Resource
	Component *ComponentStore
	Log       zerolog.Logger
}

// NewSystemBase initializes base dependency from world
// Call once in system constructor
func NewSystemBase(w *World, name string) SystemBase {
	return SystemBase{
		World:     w,
		Resource:  w.Resources,
		Component: &w.Components,
		Log:       w.Resources.Log.With().Str("system", name).Logger(),
	}
}
