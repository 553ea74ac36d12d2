package component

import (
	"github.com/lixenwraith/vi-garage/core"
)

// BuckleComponent lets an entity buckle into straps
type BuckleComponent struct {
	BuckledTo core.Entity
}

// Buckled reports whether the entity is currently strapped in
func (b BuckleComponent) Buckled() bool {
	return b.BuckledTo.Valid()
}

// StrapComponent lets an entity accept buckled entities
type StrapComponent struct {
	Buckled    []core.Entity
	MaxBuckled int
}

// Full reports whether capacity is reached
func (s StrapComponent) Full() bool {
	return s.MaxBuckled > 0 && len(s.Buckled) >= s.MaxBuckled
}
