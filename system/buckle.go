package system

import (
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// BuckleSystem straps buckle-capable entities into straps
// Attempts are raised at the strap and may be cancelled by its handlers
type BuckleSystem struct {
	engine.SystemBase

	statBuckled   *atomic.Int64
	statCancelled *atomic.Int64

	enabled bool
}

// NewBuckleSystem creates the buckle system
func NewBuckleSystem(world *engine.World) *BuckleSystem {
	s := &BuckleSystem{SystemBase: engine.NewSystemBase(world, "buckle")}
	s.statBuckled = s.Resource.Status.Ints.Get("buckle.buckled")
	s.statCancelled = s.Resource.Status.Ints.Get("buckle.cancelled")
	s.Init()
	return s
}

// Init resets session state
func (s *BuckleSystem) Init() {
	s.enabled = true
}

func (s *BuckleSystem) Name() string {
	return "buckle"
}

func (s *BuckleSystem) Priority() int {
	return parameter.PriorityBuckle
}

func (s *BuckleSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityRemoving,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent releases straps and buckles of removed entities
func (s *BuckleSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}

	if !s.enabled {
		return
	}

	p, ok := ev.Payload.(*event.EntityPayload)
	if !ok {
		return
	}

	if s.IsBuckled(p.Entity) {
		s.TryUnbuckle(p.Entity, p.Entity)
	}
	if strap, ok := s.Component.Strap.GetComponent(p.Entity); ok {
		for _, buckled := range slices.Clone(strap.Buckled) {
			s.TryUnbuckle(buckled, p.Entity)
		}
	}
}

func (s *BuckleSystem) Update() {}

// TryBuckle straps user into strap
// Returns false on unmet preconditions or when an attempt handler cancels
func (s *BuckleSystem) TryBuckle(user, strap core.Entity) bool {
	if !s.enabled || user == strap {
		return false
	}

	buckle, ok := s.Component.Buckle.GetComponent(user)
	if !ok || buckle.Buckled() {
		return false
	}
	strapComp, ok := s.Component.Strap.GetComponent(strap)
	if !ok || strapComp.Full() {
		return false
	}

	attempt := &event.BuckleAttemptPayload{Strap: strap, Buckle: user}
	s.World.Raise(event.EventBuckleAttempt, attempt)
	if attempt.Cancelled {
		s.statCancelled.Add(1)
		s.Log.Debug().Uint64("user", uint64(user)).Uint64("strap", uint64(strap)).Msg("Buckle cancelled")
		return false
	}

	// Attempt handlers may have touched either entity; re-read before committing
	buckle, _ = s.Component.Buckle.GetComponent(user)
	buckle.BuckledTo = strap
	s.Component.Buckle.SetComponent(user, buckle)

	strapComp, _ = s.Component.Strap.GetComponent(strap)
	strapComp.Buckled = append(slices.Clone(strapComp.Buckled), user)
	s.Component.Strap.SetComponent(strap, strapComp)

	s.statBuckled.Add(1)
	s.World.Raise(event.EventBuckled, &event.BucklePayload{Strap: strap, Buckle: user})
	return true
}

// TryUnbuckle releases user from its strap; by is the entity performing it
func (s *BuckleSystem) TryUnbuckle(user, by core.Entity) bool {
	buckle, ok := s.Component.Buckle.GetComponent(user)
	if !ok || !buckle.Buckled() {
		return false
	}
	strap := buckle.BuckledTo

	buckle.BuckledTo = core.NoEntity
	s.Component.Buckle.SetComponent(user, buckle)

	if strapComp, ok := s.Component.Strap.GetComponent(strap); ok {
		if i := slices.Index(strapComp.Buckled, user); i >= 0 {
			strapComp.Buckled = slices.Delete(slices.Clone(strapComp.Buckled), i, i+1)
			s.Component.Strap.SetComponent(strap, strapComp)
		}
	}

	s.Log.Debug().Uint64("user", uint64(user)).Uint64("strap", uint64(strap)).Uint64("by", uint64(by)).Msg("Unbuckled")
	s.World.Raise(event.EventUnbuckled, &event.BucklePayload{Strap: strap, Buckle: user})
	return true
}

// IsBuckled reports whether user is strapped to anything
func (s *BuckleSystem) IsBuckled(user core.Entity) bool {
	buckle, ok := s.Component.Buckle.GetComponent(user)
	return ok && buckle.Buckled()
}

// IsBuckledTo reports whether user is strapped to strap
func (s *BuckleSystem) IsBuckledTo(user, strap core.Entity) bool {
	buckle, ok := s.Component.Buckle.GetComponent(user)
	return ok && buckle.BuckledTo == strap
}

// BuckledTo returns the strap user is attached to
func (s *BuckleSystem) BuckledTo(user core.Entity) core.Entity {
	buckle, _ := s.Component.Buckle.GetComponent(user)
	return buckle.BuckledTo
}
