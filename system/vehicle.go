package system

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// AccessResolver collects the access tags a driver brings along
type AccessResolver interface {
	FindPotentialAccessItems(user core.Entity) []core.Entity
	FindAccessTags(user core.Entity, items []core.Entity) []string
}

// ActionGranter grants and revokes instant actions
type ActionGranter interface {
	AddAction(performer core.Entity, handle *core.Entity, protoID string, container core.Entity) bool
	RemoveAction(performer, action core.Entity)
}

// AppearanceSetter writes visual state
type AppearanceSetter interface {
	SetData(e core.Entity, key string, value any)
}

// SoundEmitter plays positional sounds and owns their stream handles
type SoundEmitter interface {
	PlayNear(sound core.SoundID, source core.Entity, params AudioParams) core.StreamHandle
	Stop(h core.StreamHandle) core.StreamHandle
}

// Unbuckler releases buckled entities
type Unbuckler interface {
	TryUnbuckle(user, by core.Entity) bool
}

// MovementRelay redirects movement input
type MovementRelay interface {
	SetRelay(source, target core.Entity)
	RemoveRelay(source core.Entity)
}

// HandReserver places and removes hand placeholders
type HandReserver interface {
	TrySpawnVirtualItemInHand(blocking, user core.Entity) (core.Entity, bool)
	DeleteInHandsMatching(user, blocking core.Entity) int
}

// VehicleDeps are the collaborators the vehicle system calls out to
type VehicleDeps struct {
	Access     AccessResolver
	Actions    ActionGranter
	Appearance AppearanceSetter
	Audio      SoundEmitter
	Buckle     Unbuckler
	Mover      MovementRelay
	Virtual    HandReserver
}

// LookupVehicleDeps resolves the collaborators from systems already added to world
func LookupVehicleDeps(world *engine.World) (VehicleDeps, error) {
	var deps VehicleDeps
	var err error
	if deps.Access, err = lookup[AccessResolver](world, "access"); err != nil {
		return deps, err
	}
	if deps.Actions, err = lookup[ActionGranter](world, "action"); err != nil {
		return deps, err
	}
	if deps.Appearance, err = lookup[AppearanceSetter](world, "appearance"); err != nil {
		return deps, err
	}
	if deps.Audio, err = lookup[SoundEmitter](world, "audio"); err != nil {
		return deps, err
	}
	if deps.Buckle, err = lookup[Unbuckler](world, "buckle"); err != nil {
		return deps, err
	}
	if deps.Mover, err = lookup[MovementRelay](world, "mover"); err != nil {
		return deps, err
	}
	if deps.Virtual, err = lookup[HandReserver](world, "virtual_item"); err != nil {
		return deps, err
	}
	return deps, nil
}

func lookup[T any](world *engine.World, name string) (T, error) {
	var zero T
	sys, ok := world.System(name)
	if !ok {
		return zero, fmt.Errorf("vehicle dependency %q not registered", name)
	}
	typed, ok := sys.(T)
	if !ok {
		return zero, fmt.Errorf("vehicle dependency %q has type %T", name, sys)
	}
	return typed, nil
}

// VehicleSystem drives the occupancy lifecycle of vehicles
// Attach is two-phase: a driver needs both a buckle and the seat container before the vehicle moves
type VehicleSystem struct {
	engine.SystemBase
	deps VehicleDeps

	statMounts    *atomic.Int64
	statDismounts *atomic.Int64
	statHorns     *atomic.Int64
	statSirens    *atomic.Int64
	statCancelled *atomic.Int64

	enabled bool
}

// NewVehicleSystem creates the vehicle system with explicit collaborators
func NewVehicleSystem(world *engine.World, deps VehicleDeps) *VehicleSystem {
	s := &VehicleSystem{
		SystemBase: engine.NewSystemBase(world, "vehicle"),
		deps:       deps,
	}
	s.statMounts = s.Resource.Status.Ints.Get("vehicle.mounts")
	s.statDismounts = s.Resource.Status.Ints.Get("vehicle.dismounts")
	s.statHorns = s.Resource.Status.Ints.Get("vehicle.horns")
	s.statSirens = s.Resource.Status.Ints.Get("vehicle.sirens")
	s.statCancelled = s.Resource.Status.Ints.Get("vehicle.attach_cancelled")
	s.Init()
	return s
}

// Init resets session state
func (s *VehicleSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *VehicleSystem) Name() string {
	return "vehicle"
}

func (s *VehicleSystem) Priority() int {
	return parameter.PriorityVehicle
}

func (s *VehicleSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEntityCreated,
		event.EventEntityRemoving,
		event.EventBuckleAttempt,
		event.EventBuckled,
		event.EventUnbuckled,
		event.EventContainerInserted,
		event.EventContainerRemoved,
		event.EventVirtualItemDeleted,
		event.EventHornAction,
		event.EventSirenAction,
		event.EventMetaSystemCommandRequest,
	}
}

// HandleEvent routes events directed at vehicles
func (s *VehicleSystem) HandleEvent(ev event.GameEvent) {
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

	vehicle := event.Target(ev)
	if !s.Component.Vehicle.HasEntity(vehicle) {
		return
	}

	switch ev.Type {
	case event.EventEntityCreated:
		s.deps.Appearance.SetData(vehicle, parameter.AppearanceVehicleAnimated, false)

	case event.EventEntityRemoving:
		s.handleRemoving(vehicle)

	case event.EventBuckleAttempt:
		if p, ok := ev.Payload.(*event.BuckleAttemptPayload); ok {
			s.handleStrapAttempt(vehicle, p)
		}

	case event.EventBuckled:
		if p, ok := ev.Payload.(*event.BucklePayload); ok {
			s.handleStrapped(vehicle, p.Buckle)
		}

	case event.EventUnbuckled:
		if p, ok := ev.Payload.(*event.BucklePayload); ok {
			s.handleUnstrapped(vehicle, p.Buckle)
		}

	case event.EventContainerInserted:
		if p, ok := ev.Payload.(*event.ContainerPayload); ok {
			s.handleSeat(vehicle, p.Slot, true)
		}

	case event.EventContainerRemoved:
		if p, ok := ev.Payload.(*event.ContainerPayload); ok {
			s.handleSeat(vehicle, p.Slot, false)
		}

	case event.EventVirtualItemDeleted:
		if p, ok := ev.Payload.(*event.VirtualItemDeletedPayload); ok {
			s.handleDropped(vehicle, p.User)
		}

	case event.EventHornAction:
		if p, ok := ev.Payload.(*event.ActionPayload); ok {
			s.handleHorn(vehicle, p)
		}

	case event.EventSirenAction:
		if p, ok := ev.Payload.(*event.ActionPayload); ok {
			s.handleSiren(vehicle, p)
		}
	}
}

// Update is a no-op; vehicles react only to events
func (s *VehicleSystem) Update() {}

// handleRemoving releases the driver and the siren loop before the vehicle's stores are cleared
func (s *VehicleSystem) handleRemoving(vehicle core.Entity) {
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Occupied() {
		driver := vc.Driver
		s.deps.Buckle.TryUnbuckle(driver, driver)
		s.Dismount(driver, vehicle)
	}

	vc, ok := s.Component.Vehicle.GetComponent(vehicle)
	if !ok {
		return
	}
	vc.SirenStream = s.deps.Audio.Stop(vc.SirenStream)
	vc.SirenEnabled = false
	s.Component.Vehicle.SetComponent(vehicle, vc)
}

// handleStrapAttempt reserves the driver's hands and grants the vehicle actions
// Any failure cancels the attempt with no placeholders left behind
func (s *VehicleSystem) handleStrapAttempt(vehicle core.Entity, p *event.BuckleAttemptPayload) {
	if p.Cancelled {
		return
	}
	driver := p.Buckle

	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Occupied() {
		p.Cancelled = true
		s.statCancelled.Add(1)
		s.Log.Debug().Uint64("vehicle", uint64(vehicle)).Uint64("driver", uint64(driver)).Msg("Attach rejected, vehicle occupied")
		return
	}

	for i := 0; i < vc.RequiredHands; i++ {
		if _, ok := s.deps.Virtual.TrySpawnVirtualItemInHand(vehicle, driver); !ok {
			p.Cancelled = true
			s.deps.Virtual.DeleteInHandsMatching(driver, vehicle)
			s.statCancelled.Add(1)
			s.Log.Debug().Uint64("vehicle", uint64(vehicle)).Uint64("driver", uint64(driver)).
				Int("required", vc.RequiredHands).Msg("Attach cancelled, not enough free hands")
			return
		}
	}

	s.addHorns(driver, vehicle)
}

// handleStrapped assigns the driver and mounts when the engine already runs
func (s *VehicleSystem) handleStrapped(vehicle, driver core.Entity) {
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Occupied() {
		return
	}

	if !s.Component.MobMover.HasEntity(driver) {
		// The attempt already granted actions and reserved hands for this candidate
		s.revokeGrants(driver, vehicle)
		return
	}

	vc.Driver = driver
	s.Component.Vehicle.SetComponent(vehicle, vc)
	s.Log.Debug().Uint64("vehicle", uint64(vehicle)).Uint64("driver", uint64(driver)).Msg("Driver assigned")

	if !vc.EngineRunning {
		return
	}
	s.mount(driver, vehicle)
}

func (s *VehicleSystem) handleUnstrapped(vehicle, user core.Entity) {
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Driver != user {
		return
	}
	s.Dismount(user, vehicle)
}

// handleSeat tracks seat occupancy as the engine state
func (s *VehicleSystem) handleSeat(vehicle core.Entity, slot string, inserted bool) {
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if slot != vc.SeatContainer {
		return
	}

	vc.EngineRunning = inserted
	s.Component.Vehicle.SetComponent(vehicle, vc)

	if !vc.Occupied() {
		return
	}
	if inserted {
		s.mount(vc.Driver, vehicle)
	} else {
		s.Dismount(vc.Driver, vehicle)
	}
}

// handleDropped force-releases a driver who let go of a reserved hand
func (s *VehicleSystem) handleDropped(vehicle, user core.Entity) {
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Driver != user {
		return
	}
	s.deps.Buckle.TryUnbuckle(user, user)
	s.Dismount(user, vehicle)
}

func (s *VehicleSystem) handleHorn(vehicle core.Entity, p *event.ActionPayload) {
	if p.Handled {
		return
	}
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Driver != p.Performer {
		return
	}
	// Horn is gated on the siren sound, vehicles without a siren stay silent
	if !vc.SirenSound.Set() {
		return
	}

	s.deps.Audio.PlayNear(vc.HornSound, vehicle, DefaultAudioParams())
	p.Handled = true

	s.statHorns.Add(1)
	s.World.PushEvent(event.EventVehicleHorn, &event.VehiclePayload{Vehicle: vehicle, Driver: vc.Driver})
}

func (s *VehicleSystem) handleSiren(vehicle core.Entity, p *event.ActionPayload) {
	if p.Handled {
		return
	}
	vc, _ := s.Component.Vehicle.GetComponent(vehicle)
	if vc.Driver != p.Performer {
		return
	}
	if !vc.SirenSound.Set() {
		return
	}

	if vc.SirenEnabled {
		vc.SirenStream = s.deps.Audio.Stop(vc.SirenStream)
	} else {
		params := DefaultAudioParams().WithLoop(true).WithMaxDistance(parameter.SirenMaxDistance)
		vc.SirenStream = s.deps.Audio.PlayNear(vc.SirenSound, vehicle, params)
	}
	vc.SirenEnabled = !vc.SirenEnabled
	s.Component.Vehicle.SetComponent(vehicle, vc)
	p.Handled = true

	s.statSirens.Add(1)
	s.Log.Debug().Uint64("vehicle", uint64(vehicle)).Uint64("driver", uint64(vc.Driver)).Bool("enabled", vc.SirenEnabled).Msg("Siren toggled")
	s.World.PushEvent(event.EventVehicleSiren, &event.VehicleSirenPayload{
		Vehicle: vehicle,
		Driver:  vc.Driver,
		Enabled: vc.SirenEnabled,
	})
}

// addHorns grants the actions for each configured sound
func (s *VehicleSystem) addHorns(driver, vehicle core.Entity) {
	vc, ok := s.Component.Vehicle.GetComponent(vehicle)
	if !ok {
		return
	}

	if vc.HornSound.Set() {
		s.deps.Actions.AddAction(driver, &vc.HornAction, parameter.HornActionID, vehicle)
	}
	if vc.SirenSound.Set() {
		s.deps.Actions.AddAction(driver, &vc.SirenAction, parameter.SirenActionID, vehicle)
	}
	s.Component.Vehicle.SetComponent(vehicle, vc)
}

// revokeGrants undoes a successful attempt whose buckle could not become a driver
func (s *VehicleSystem) revokeGrants(candidate, vehicle core.Entity) {
	vc, ok := s.Component.Vehicle.GetComponent(vehicle)
	if !ok {
		return
	}
	horn, siren := vc.HornAction, vc.SirenAction
	vc.HornAction, vc.SirenAction = core.NoEntity, core.NoEntity
	s.Component.Vehicle.SetComponent(vehicle, vc)

	s.deps.Actions.RemoveAction(candidate, horn)
	s.deps.Actions.RemoveAction(candidate, siren)
	s.deps.Virtual.DeleteInHandsMatching(candidate, vehicle)
}

// mount hands vehicle control to driver
func (s *VehicleSystem) mount(driver, vehicle core.Entity) {
	if access, ok := s.Component.Access.GetComponent(vehicle); ok {
		items := s.deps.Access.FindPotentialAccessItems(driver)
		tags := s.deps.Access.FindAccessTags(driver, items)
		if access.Tags == nil {
			access.Tags = make(map[string]struct{}, len(tags))
		}
		for _, tag := range tags {
			access.Tags[tag] = struct{}{}
		}
		s.Component.Access.SetComponent(vehicle, access)
	}

	s.deps.Appearance.SetData(vehicle, parameter.AppearanceVehicleAnimated, true)
	s.deps.Mover.SetRelay(driver, vehicle)

	s.statMounts.Add(1)
	s.Log.Debug().Uint64("vehicle", uint64(vehicle)).Uint64("driver", uint64(driver)).Msg("Mounted")
	s.World.PushEvent(event.EventVehicleMounted, &event.VehiclePayload{Vehicle: vehicle, Driver: driver})
}

// Dismount releases vehicle from driver
// Returns false when vehicle is not a vehicle or driver is not its driver
func (s *VehicleSystem) Dismount(driver, vehicle core.Entity) bool {
	vc, ok := s.Component.Vehicle.GetComponent(vehicle)
	if !ok {
		return false
	}
	if !driver.Valid() || vc.Driver != driver {
		return false
	}

	// Commit before calling out; placeholder deletion re-enters through EventVirtualItemDeleted
	horn, siren := vc.HornAction, vc.SirenAction
	vc.Driver = core.NoEntity
	vc.HornAction, vc.SirenAction = core.NoEntity, core.NoEntity
	s.Component.Vehicle.SetComponent(vehicle, vc)

	s.deps.Mover.RemoveRelay(driver)
	s.deps.Appearance.SetData(vehicle, parameter.AppearanceVehicleAnimated, false)

	s.deps.Actions.RemoveAction(driver, horn)
	s.deps.Actions.RemoveAction(driver, siren)

	s.deps.Virtual.DeleteInHandsMatching(driver, vehicle)

	if access, ok := s.Component.Access.GetComponent(vehicle); ok {
		access.Tags = make(map[string]struct{})
		s.Component.Access.SetComponent(vehicle, access)
	}

	s.statDismounts.Add(1)
	s.Log.Debug().Uint64("vehicle", uint64(vehicle)).Uint64("driver", uint64(driver)).Msg("Dismounted")
	s.World.PushEvent(event.EventVehicleDismounted, &event.VehiclePayload{Vehicle: vehicle, Driver: driver})
	return true
}
