package system

import (
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// ActionPrototype is a static instant action definition
type ActionPrototype struct {
	ID    string
	Name  string
	Event event.EventType // Raised at the granting entity when performed
}

// actionPrototypes is read-only after init
var actionPrototypes = map[string]ActionPrototype{
	parameter.HornActionID:  {ID: parameter.HornActionID, Name: "Honk", Event: event.EventHornAction},
	parameter.SirenActionID: {ID: parameter.SirenActionID, Name: "Toggle siren", Event: event.EventSirenAction},
}

// LookupActionPrototype resolves an action id
func LookupActionPrototype(id string) (ActionPrototype, bool) {
	p, ok := actionPrototypes[id]
	return p, ok
}

// ActionSystem grants, revokes and performs instant actions
// Each grant is an entity holding ActionComponent, listed on the performer
type ActionSystem struct {
	engine.SystemBase

	statGranted *atomic.Int64
	statRevoked *atomic.Int64

	enabled bool
}

// NewActionSystem creates the action system
func NewActionSystem(world *engine.World) *ActionSystem {
	s := &ActionSystem{SystemBase: engine.NewSystemBase(world, "action")}
	s.statGranted = s.Resource.Status.Ints.Get("action.granted")
	s.statRevoked = s.Resource.Status.Ints.Get("action.revoked")
	s.Init()
	return s
}

// Init resets session state
func (s *ActionSystem) Init() {
	s.enabled = true
}

func (s *ActionSystem) Name() string {
	return "action"
}

func (s *ActionSystem) Priority() int {
	return parameter.PriorityAction
}

func (s *ActionSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityRemoving,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent drops grants held by a removed performer
func (s *ActionSystem) HandleEvent(ev event.GameEvent) {
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
	actions, ok := s.Component.Actions.GetComponent(p.Entity)
	if !ok {
		return
	}
	for _, a := range actions.Actions {
		s.World.DestroyEntity(a)
	}
}

func (s *ActionSystem) Update() {}

// AddAction grants protoID to performer with container as its source
// An existing live handle is re-attached; otherwise a new action entity is stored in *handle
func (s *ActionSystem) AddAction(performer core.Entity, handle *core.Entity, protoID string, container core.Entity) bool {
	proto, ok := LookupActionPrototype(protoID)
	if !ok {
		s.Log.Warn().Str("action", protoID).Msg("Unknown action prototype")
		return false
	}
	if !s.World.Exists(performer) {
		return false
	}

	action := *handle
	if !action.Valid() || !s.Component.Action.HasEntity(action) {
		action = s.World.CreateEntity()
	}
	s.Component.Action.SetComponent(action, component.ActionComponent{
		Prototype:      proto.ID,
		Name:           proto.Name,
		Container:      container,
		AttachedEntity: performer,
		Event:          proto.Event,
	})

	actions, _ := s.Component.Actions.GetComponent(performer)
	if !slices.Contains(actions.Actions, action) {
		actions.Actions = append(actions.Actions, action)
	}
	s.Component.Actions.SetComponent(performer, actions)

	*handle = action
	s.statGranted.Add(1)
	return true
}

// RemoveAction detaches action from performer and deletes it
func (s *ActionSystem) RemoveAction(performer, action core.Entity) {
	if !action.Valid() {
		return
	}

	if actions, ok := s.Component.Actions.GetComponent(performer); ok {
		if i := slices.Index(actions.Actions, action); i >= 0 {
			actions.Actions = slices.Delete(actions.Actions, i, i+1)
			s.Component.Actions.SetComponent(performer, actions)
		}
	}

	if s.Component.Action.HasEntity(action) {
		s.World.DestroyEntity(action)
		s.statRevoked.Add(1)
	}
}

// Actions returns the actions granted to performer
func (s *ActionSystem) Actions(performer core.Entity) []core.Entity {
	actions, _ := s.Component.Actions.GetComponent(performer)
	return slices.Clone(actions.Actions)
}

// FindAction returns the performer's grant for protoID
func (s *ActionSystem) FindAction(performer core.Entity, protoID string) (core.Entity, bool) {
	for _, a := range s.Actions(performer) {
		if comp, ok := s.Component.Action.GetComponent(a); ok && comp.Prototype == protoID {
			return a, true
		}
	}
	return core.NoEntity, false
}

// PerformAction raises the action's event at its source and reports whether a handler consumed it
func (s *ActionSystem) PerformAction(performer, action core.Entity) bool {
	comp, ok := s.Component.Action.GetComponent(action)
	if !ok || comp.AttachedEntity != performer {
		return false
	}

	payload := &event.ActionPayload{
		Action:    action,
		Performer: performer,
		Source:    comp.Container,
	}
	s.World.Raise(comp.Event, payload)
	return payload.Handled
}
