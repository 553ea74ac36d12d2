package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

func TestVehicleCreatedNotAnimated(t *testing.T) {
	h := newHarness(t)
	atv := h.spawnAt("ATV", 0, 0)

	v, ok := h.appearance.GetData(atv, parameter.AppearanceVehicleAnimated)
	require.True(t, ok, "animation flag should be initialised on creation")
	assert.Equal(t, false, v)

	state := h.vehicleState(atv)
	assert.False(t, state.Occupied())
	assert.False(t, state.EngineRunning)
	assert.Equal(t, parameter.DefaultSeatContainer, state.SeatContainer)
}

func TestMountBuckleThenSeat(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)

	require.True(t, h.buckle.TryBuckle(human, atv))

	state := h.vehicleState(atv)
	assert.Equal(t, human, state.Driver)
	assert.False(t, state.EngineRunning)
	assert.True(t, state.HornAction.Valid(), "horn should be granted on attach")
	assert.False(t, state.SirenAction.Valid(), "no siren sound, no siren action")
	assert.Equal(t, 2, h.placeholders(human, atv))
	assert.False(t, h.animated(atv), "mount waits for the seat")
	_, relayed := h.mover.RelayOf(human)
	assert.False(t, relayed)

	require.True(t, h.container.Insert(atv, state.SeatContainer, human))

	state = h.vehicleState(atv)
	assert.True(t, state.EngineRunning)
	assert.Equal(t, human, state.Driver)
	assert.True(t, h.animated(atv))
	target, relayed := h.mover.RelayOf(human)
	assert.True(t, relayed)
	assert.Equal(t, atv, target)
	assert.Equal(t, int64(1), h.stat("vehicle.mounts"))

	h.w.DispatchEvents()
	assert.Equal(t, 1, h.journal.Pending())
}

func TestMountSeatThenBuckle(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)

	require.True(t, h.container.Insert(atv, parameter.DefaultSeatContainer, human))
	state := h.vehicleState(atv)
	assert.True(t, state.EngineRunning)
	assert.False(t, state.Occupied())
	assert.False(t, h.animated(atv))

	require.True(t, h.buckle.TryBuckle(human, atv))
	assert.Equal(t, human, h.vehicleState(atv).Driver)
	assert.True(t, h.animated(atv))
	_, relayed := h.mover.RelayOf(human)
	assert.True(t, relayed)
}

func TestDriverRequiresBuckleAndSeat(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)
	h.seat(human, atv)

	state := h.vehicleState(atv)
	require.Equal(t, human, state.Driver)
	assert.True(t, h.buckle.IsBuckledTo(human, atv))
	assert.True(t, h.container.Contains(atv, state.SeatContainer, human))

	// Leaving the seat clears the driver even though the buckle holds
	require.True(t, h.container.Remove(atv, state.SeatContainer, human))
	state = h.vehicleState(atv)
	assert.False(t, state.Occupied())
	assert.False(t, state.EngineRunning)
	assert.True(t, h.buckle.IsBuckledTo(human, atv))
	assert.Zero(t, h.placeholders(human, atv))
	assert.Empty(t, h.action.Actions(human))
	assert.False(t, h.animated(atv))

	// A buckled passenger back in the seat does not regain control
	require.True(t, h.container.Insert(atv, state.SeatContainer, human))
	assert.False(t, h.vehicleState(atv).Occupied())
	assert.False(t, h.animated(atv))

	require.True(t, h.buckle.TryUnbuckle(human, human))
	require.True(t, h.buckle.TryBuckle(human, atv))
	assert.Equal(t, human, h.vehicleState(atv).Driver)
	assert.True(t, h.animated(atv))
}

func TestSecondAttachRejected(t *testing.T) {
	h := newHarness(t)
	first := h.spawnAt("Human", 0, 0)
	second := h.spawnAt("Human", 0, 1)
	bus := h.spawnAt("Bus", 1, 0)
	h.seat(first, bus)

	assert.False(t, h.buckle.TryBuckle(second, bus), "occupied vehicle must reject attach")
	assert.False(t, h.buckle.IsBuckled(second))
	assert.Zero(t, h.placeholders(second, bus))
	assert.Empty(t, h.action.Actions(second))
	assert.Equal(t, first, h.vehicleState(bus).Driver)
	assert.Equal(t, int64(1), h.stat("vehicle.attach_cancelled"))
	assert.Equal(t, int64(1), h.stat("buckle.cancelled"))
}

func TestHandReservationAllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		driver string
	}{
		{"second reservation fails", "OneHanded"},
		{"third reservation fails", "Human"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			driver := h.spawnAt(tt.driver, 0, 0)
			forklift := h.spawnAt("Forklift", 1, 0)

			assert.False(t, h.buckle.TryBuckle(driver, forklift))
			assert.Zero(t, h.placeholders(driver, forklift))
			assert.Zero(t, h.w.Components.VirtualItem.CountEntities())
			assert.Empty(t, h.hands.Held(driver))
			assert.Empty(t, h.action.Actions(driver))
			assert.False(t, h.buckle.IsBuckled(driver))

			state := h.vehicleState(forklift)
			assert.False(t, state.Occupied())
			assert.False(t, state.HornAction.Valid())
		})
	}
}

func TestHeldItemBlocksReservation(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	card := h.spawnAt("IDCardJanitor", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)
	require.True(t, h.hands.PickUp(human, card))

	assert.False(t, h.buckle.TryBuckle(human, atv))
	assert.Equal(t, []core.Entity{card}, h.hands.Held(human))
}

func TestDismountIdempotent(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	other := h.spawnAt("Human", 0, 1)
	atv := h.spawnAt("ATV", 1, 0)

	before := h.vehicleState(atv)
	assert.False(t, h.vehicle.Dismount(human, atv))
	assert.Equal(t, before, h.vehicleState(atv))
	assert.Zero(t, h.stat("vehicle.dismounts"))

	assert.False(t, h.vehicle.Dismount(human, human), "non-vehicle must fail")

	h.seat(human, atv)
	assert.False(t, h.vehicle.Dismount(other, atv), "wrong driver must fail")
	assert.Equal(t, human, h.vehicleState(atv).Driver)

	assert.True(t, h.vehicle.Dismount(human, atv))
	after := h.vehicleState(atv)
	assert.False(t, h.vehicle.Dismount(human, atv))
	assert.Equal(t, after, h.vehicleState(atv))
	assert.Equal(t, int64(1), h.stat("vehicle.dismounts"))
}

func TestAccessTagsFollowDriver(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	card := h.spawnAt("IDCardCaptain", 0, 0)
	amb := h.spawnAt("Ambulance", 1, 0)
	require.True(t, h.hands.PickUp(human, card))

	h.seat(human, amb)

	driverTags := h.access.FindAccessTags(human, h.access.FindPotentialAccessItems(human))
	require.NotEmpty(t, driverTags)
	access, ok := h.w.Components.Access.GetComponent(amb)
	require.True(t, ok)
	for _, tag := range driverTags {
		assert.True(t, access.Has(tag), "vehicle missing driver tag %s", tag)
	}
	assert.True(t, access.Has("Medical"), "own tags are kept while mounted")

	require.True(t, h.buckle.TryUnbuckle(human, human))
	access, _ = h.w.Components.Access.GetComponent(amb)
	assert.Empty(t, access.Tags)
}

func TestSirenTogglePureFlip(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	amb := h.spawnAt("Ambulance", 1, 0)
	h.seat(human, amb)

	siren, ok := h.action.FindAction(human, parameter.SirenActionID)
	require.True(t, ok)
	before := h.vehicleState(amb)
	require.False(t, before.SirenEnabled)
	require.Equal(t, core.NoStream, before.SirenStream)

	require.True(t, h.action.PerformAction(human, siren))
	state := h.vehicleState(amb)
	assert.True(t, state.SirenEnabled)
	assert.NotEqual(t, core.NoStream, state.SirenStream)
	assert.True(t, h.audio.Playing(state.SirenStream))

	require.True(t, h.action.PerformAction(human, siren))
	state = h.vehicleState(amb)
	assert.Equal(t, before.SirenEnabled, state.SirenEnabled)
	assert.Equal(t, core.NoStream, state.SirenStream)
	assert.Zero(t, h.audio.StreamCount())
	assert.Equal(t, int64(2), h.stat("vehicle.sirens"))

	h.w.DispatchEvents()
	assert.Equal(t, 3, h.journal.Pending(), "mount plus two siren toggles")
}

func TestHornGatedOnSirenSound(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)
	h.seat(human, atv)

	horn, ok := h.action.FindAction(human, parameter.HornActionID)
	require.True(t, ok, "horn is granted when a horn sound is configured")
	assert.False(t, h.action.PerformAction(human, horn), "no siren sound, horn stays silent")
	assert.Zero(t, h.stat("audio.played"))
	assert.Zero(t, h.stat("vehicle.horns"))

	other := h.spawnAt("Human", 5, 5)
	amb := h.spawnAt("Ambulance", 6, 5)
	h.seat(other, amb)
	horn, ok = h.action.FindAction(other, parameter.HornActionID)
	require.True(t, ok)
	assert.True(t, h.action.PerformAction(other, horn))
	assert.Equal(t, int64(1), h.stat("audio.played"))
	assert.Zero(t, h.audio.StreamCount(), "one-shots are not tracked")
}

func TestOnlyDriverTriggersActions(t *testing.T) {
	h := newHarness(t)
	driver := h.spawnAt("Human", 0, 0)
	stranger := h.spawnAt("Human", 0, 1)
	amb := h.spawnAt("Ambulance", 1, 0)
	h.seat(driver, amb)

	siren, _ := h.action.FindAction(driver, parameter.SirenActionID)
	assert.False(t, h.action.PerformAction(stranger, siren))

	payload := &event.ActionPayload{Action: siren, Performer: stranger, Source: amb}
	h.w.Raise(event.EventSirenAction, payload)
	assert.False(t, payload.Handled)
	assert.False(t, h.vehicleState(amb).SirenEnabled)

	handled := &event.ActionPayload{Action: siren, Performer: driver, Source: amb, Handled: true}
	h.w.Raise(event.EventSirenAction, handled)
	assert.False(t, h.vehicleState(amb).SirenEnabled, "already handled actions are ignored")
}

type removingProbe struct {
	world   *engine.World
	target  core.Entity
	vehicle component.VehicleComponent
	access  component.AccessComponent
	seen    bool
}

func (p *removingProbe) EventTypes() []event.EventType {
	return []event.EventType{event.EventEntityRemoving}
}

func (p *removingProbe) HandleEvent(ev event.GameEvent) {
	if event.Target(ev) != p.target {
		return
	}
	p.vehicle, p.seen = p.world.Components.Vehicle.GetComponent(p.target)
	p.access, _ = p.world.Components.Access.GetComponent(p.target)
}

func TestDestroyOccupiedVehicle(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	card := h.spawnAt("IDCardCaptain", 0, 0)
	amb := h.spawnAt("Ambulance", 1, 0)
	require.True(t, h.hands.PickUp(human, card))
	h.seat(human, amb)

	siren, _ := h.action.FindAction(human, parameter.SirenActionID)
	require.True(t, h.action.PerformAction(human, siren))
	require.NotEqual(t, core.NoStream, h.vehicleState(amb).SirenStream)

	probe := &removingProbe{world: h.w, target: amb}
	h.w.Router().Register(probe)

	h.w.DestroyEntity(amb)

	// State observed while the vehicle's components were still readable
	require.True(t, probe.seen)
	assert.False(t, probe.vehicle.Driver.Valid())
	assert.False(t, probe.vehicle.HornAction.Valid())
	assert.False(t, probe.vehicle.SirenAction.Valid())
	assert.False(t, probe.vehicle.SirenEnabled)
	assert.Equal(t, core.NoStream, probe.vehicle.SirenStream)
	assert.Empty(t, probe.access.Tags)

	assert.False(t, h.w.Exists(amb))
	assert.False(t, h.buckle.IsBuckled(human))
	_, relayed := h.mover.RelayOf(human)
	assert.False(t, relayed)
	assert.Empty(t, h.action.Actions(human))
	assert.Zero(t, h.w.Components.Action.CountEntities())
	assert.Zero(t, h.w.Components.VirtualItem.CountEntities())
	assert.Zero(t, h.audio.StreamCount())
	assert.Equal(t, []core.Entity{card}, h.hands.Held(human))
	assert.Equal(t, int64(1), h.stat("vehicle.dismounts"))
}

func TestDestroyDriver(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)
	h.seat(human, atv)

	h.w.DestroyEntity(human)

	state := h.vehicleState(atv)
	assert.False(t, state.Occupied())
	assert.False(t, state.HornAction.Valid())
	assert.False(t, h.w.Components.RelayTarget.HasEntity(atv))
	assert.False(t, h.animated(atv))
	assert.Zero(t, h.w.Components.VirtualItem.CountEntities())
	assert.False(t, h.container.Contains(atv, state.SeatContainer, human))
	assert.False(t, state.EngineRunning)
}

func TestUnbuckleDismounts(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)
	h.seat(human, atv)

	require.True(t, h.buckle.TryUnbuckle(human, human))

	state := h.vehicleState(atv)
	assert.False(t, state.Occupied())
	assert.True(t, state.EngineRunning, "engine follows the seat, not the buckle")
	assert.False(t, h.animated(atv))
	assert.Zero(t, h.placeholders(human, atv))
	assert.Empty(t, h.action.Actions(human))
	_, relayed := h.mover.RelayOf(human)
	assert.False(t, relayed)

	h.w.DispatchEvents()
	assert.Equal(t, 2, h.journal.Pending(), "mount and dismount")
}

func TestDroppingPlaceholderForcesDismount(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)
	h.seat(human, atv)
	require.Equal(t, 2, h.placeholders(human, atv))

	_, ok := h.hands.Drop(human, 0)
	require.True(t, ok)

	assert.False(t, h.buckle.IsBuckled(human))
	assert.False(t, h.vehicleState(atv).Occupied())
	assert.Zero(t, h.placeholders(human, atv))
	assert.Empty(t, h.hands.Held(human))
}

func TestNonMobMoverCannotDrive(t *testing.T) {
	h := newHarness(t)
	crate := h.spawnAt("Crate", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)

	require.True(t, h.buckle.TryBuckle(crate, atv), "the buckle itself is not vetoed")

	state := h.vehicleState(atv)
	assert.False(t, state.Occupied())
	assert.False(t, state.HornAction.Valid())
	assert.Zero(t, h.placeholders(crate, atv))
	assert.Empty(t, h.action.Actions(crate))
	assert.Zero(t, h.w.Components.Action.CountEntities())
}

func TestOnlySeatSlotDrivesEngine(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	crate := h.spawnAt("Crate", 0, 1)
	pickup := h.spawnAt("Pickup", 1, 0)

	require.True(t, h.container.Insert(pickup, "trunk", crate))
	assert.False(t, h.vehicleState(pickup).EngineRunning)

	require.True(t, h.buckle.TryBuckle(human, pickup))
	assert.Zero(t, h.placeholders(human, pickup), "no hands required")
	state := h.vehicleState(pickup)
	assert.True(t, state.HornAction.Valid(), "actions granted without hand reservation")
	assert.True(t, state.SirenAction.Valid())

	require.True(t, h.container.Insert(pickup, "cab", human))
	assert.True(t, h.vehicleState(pickup).EngineRunning)
	assert.True(t, h.animated(pickup))

	require.True(t, h.container.Remove(pickup, "trunk", crate))
	assert.True(t, h.vehicleState(pickup).Occupied(), "trunk changes leave the driver alone")
}

func TestMountedDriverSteersVehicle(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 5, 5)
	h.seat(human, atv)

	h.mover.SetIntent(human, 1, -1)
	h.mover.Update()

	vpos, _ := h.w.Components.Position.GetComponent(atv)
	assert.Equal(t, component.PositionComponent{X: 6, Y: 4}, vpos)
	hpos, _ := h.w.Components.Position.GetComponent(human)
	assert.Equal(t, vpos, hpos, "rider follows the vehicle")

	require.True(t, h.container.Remove(atv, parameter.DefaultSeatContainer, human))
	h.mover.SetIntent(human, 1, 0)
	h.mover.Update()
	vpos, _ = h.w.Components.Position.GetComponent(atv)
	assert.Equal(t, component.PositionComponent{X: 6, Y: 4}, vpos, "no relay without a running engine")
}

func TestVehicleSystemToggle(t *testing.T) {
	h := newHarness(t)
	human := h.spawnAt("Human", 0, 0)
	atv := h.spawnAt("ATV", 1, 0)

	event.EmitSystemCommand(h.w.Resources.Event.Queue, "vehicle", false, 0)
	h.w.DispatchEvents()

	require.True(t, h.buckle.TryBuckle(human, atv))
	assert.False(t, h.vehicleState(atv).Occupied())
	assert.Zero(t, h.placeholders(human, atv))

	require.True(t, h.buckle.TryUnbuckle(human, human))
	event.EmitSystemCommand(h.w.Resources.Event.Queue, "vehicle", true, 0)
	h.w.DispatchEvents()

	h.seat(human, atv)
	assert.Equal(t, human, h.vehicleState(atv).Driver)
}

func TestLookupVehicleDepsMissing(t *testing.T) {
	w := engine.NewWorld()
	w.AddSystem(NewAccessSystem(w))

	_, err := LookupVehicleDeps(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action")
}
