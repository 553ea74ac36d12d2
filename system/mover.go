package system

import (
	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// MoverSystem applies movement intent once per tick
// A relaying entity steers its relay target instead of itself; buckled riders follow their strap
type MoverSystem struct {
	engine.SystemBase

	enabled bool
}

// NewMoverSystem creates the mover system
func NewMoverSystem(world *engine.World) *MoverSystem {
	s := &MoverSystem{SystemBase: engine.NewSystemBase(world, "mover")}
	s.Init()
	return s
}

// Init resets session state
func (s *MoverSystem) Init() {
	s.enabled = true
}

func (s *MoverSystem) Name() string {
	return "mover"
}

func (s *MoverSystem) Priority() int {
	return parameter.PriorityMover
}

func (s *MoverSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityRemoving,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent breaks relays touching a removed entity
func (s *MoverSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}

	p, ok := ev.Payload.(*event.EntityPayload)
	if !ok {
		return
	}
	if s.Component.Relay.HasEntity(p.Entity) {
		s.RemoveRelay(p.Entity)
	}
	if target, ok := s.Component.RelayTarget.GetComponent(p.Entity); ok {
		s.RemoveRelay(target.Source)
	}
}

// SetRelay redirects source's movement intent to target
// An existing relay on source is replaced
func (s *MoverSystem) SetRelay(source, target core.Entity) {
	if source == target {
		return
	}
	if s.Component.Relay.HasEntity(source) {
		s.RemoveRelay(source)
	}
	s.Component.Relay.SetComponent(source, component.RelayInputMoverComponent{RelayEntity: target})
	s.Component.RelayTarget.SetComponent(target, component.MovementRelayTargetComponent{Source: source})
}

// RemoveRelay stops relaying source's input; the target marker goes with it if it still points back
func (s *MoverSystem) RemoveRelay(source core.Entity) {
	relay, ok := s.Component.Relay.GetComponent(source)
	if !ok {
		return
	}
	s.Component.Relay.RemoveEntity(source)

	if target, ok := s.Component.RelayTarget.GetComponent(relay.RelayEntity); ok && target.Source == source {
		s.Component.RelayTarget.RemoveEntity(relay.RelayEntity)
	}
}

// RelayOf returns the entity source steers, if any
func (s *MoverSystem) RelayOf(source core.Entity) (core.Entity, bool) {
	relay, ok := s.Component.Relay.GetComponent(source)
	return relay.RelayEntity, ok
}

// SetIntent records the movement request of e for the next tick
func (s *MoverSystem) SetIntent(e core.Entity, dx, dy int) {
	if !s.Component.InputMover.HasEntity(e) {
		return
	}
	s.Component.InputMover.SetComponent(e, component.InputMoverComponent{DX: dx, DY: dy})
}

func (s *MoverSystem) Update() {
	if !s.enabled {
		return
	}

	for _, e := range s.Component.InputMover.GetAllEntities() {
		input, _ := s.Component.InputMover.GetComponent(e)
		if input.DX == 0 && input.DY == 0 {
			continue
		}
		s.Component.InputMover.SetComponent(e, component.InputMoverComponent{})

		mover := e
		if relay, ok := s.Component.Relay.GetComponent(e); ok {
			mover = relay.RelayEntity
		} else if buckle, ok := s.Component.Buckle.GetComponent(e); ok && buckle.Buckled() {
			continue
		}

		pos, ok := s.Component.Position.GetComponent(mover)
		if !ok {
			continue
		}
		pos.X += input.DX
		pos.Y += input.DY
		s.Component.Position.SetComponent(mover, pos)
	}

	// Riders track their strap after all moves are applied
	for _, e := range s.Component.Buckle.GetAllEntities() {
		buckle, _ := s.Component.Buckle.GetComponent(e)
		if !buckle.Buckled() {
			continue
		}
		strapPos, ok := s.Component.Position.GetComponent(buckle.BuckledTo)
		if !ok || !s.Component.Position.HasEntity(e) {
			continue
		}
		s.Component.Position.SetComponent(e, strapPos)
	}
}
