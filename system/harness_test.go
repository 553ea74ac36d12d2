package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-garage/component"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/parameter"
	"github.com/lixenwraith/vi-garage/prototype"
)

// testPrototypes extends the built-in set with edge-case fixtures
const testPrototypes = `
prototypes:
  - id: OneHanded
    name: one-handed human
    hands: 1
    buckle: true
    mobMover: true
  - id: Crate
    name: crate
    hands: 2
    buckle: true
  - id: Bus
    name: bus
    vehicle:
      hornSound: vehicle.horn
      sirenSound: vehicle.siren
      requiredHands: 1
    strap:
      maxBuckled: 4
  - id: Forklift
    name: forklift
    vehicle:
      hornSound: vehicle.horn
      requiredHands: 3
    strap:
      maxBuckled: 1
  - id: Pickup
    name: pickup
    vehicle:
      hornSound: vehicle.horn
      sirenSound: vehicle.siren
      requiredHands: 0
      seat: cab
    strap:
      maxBuckled: 1
    container: [trunk]
`

type harness struct {
	t *testing.T
	w *engine.World

	spawn      *SpawnSystem
	access     *AccessSystem
	action     *ActionSystem
	appearance *AppearanceSystem
	audio      *AudioSystem
	buckle     *BuckleSystem
	container  *ContainerSystem
	mover      *MoverSystem
	virtual    *VirtualItemSystem
	hands      *HandsSystem
	vehicle    *VehicleSystem
	journal    *JournalSystem
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	w := engine.NewWorld()
	extra, err := prototype.Load(strings.NewReader(testPrototypes))
	require.NoError(t, err)
	w.Resources.Prototypes.Merge(extra)

	h := &harness{t: t, w: w}
	h.spawn = NewSpawnSystem(w)
	h.access = NewAccessSystem(w)
	h.action = NewActionSystem(w)
	h.appearance = NewAppearanceSystem(w)
	h.audio = NewAudioSystem(w)
	h.buckle = NewBuckleSystem(w)
	h.container = NewContainerSystem(w)
	h.mover = NewMoverSystem(w)
	h.virtual = NewVirtualItemSystem(w)
	h.hands = NewHandsSystem(w, h.virtual)
	for _, s := range []engine.System{
		h.spawn, h.access, h.action, h.appearance, h.audio,
		h.buckle, h.container, h.mover, h.virtual, h.hands,
	} {
		w.AddSystem(s)
	}

	deps, err := LookupVehicleDeps(w)
	require.NoError(t, err)
	h.vehicle = NewVehicleSystem(w, deps)
	w.AddSystem(h.vehicle)

	h.journal = NewJournalSystem(w)
	w.AddSystem(h.journal)
	return h
}

func (h *harness) spawnAt(protoID string, x, y int) core.Entity {
	h.t.Helper()
	e, err := h.spawn.Spawn(protoID, x, y)
	require.NoError(h.t, err)
	return e
}

func (h *harness) vehicleState(v core.Entity) component.VehicleComponent {
	h.t.Helper()
	vc, ok := h.w.Components.Vehicle.GetComponent(v)
	require.True(h.t, ok, "vehicle component missing")
	return vc
}

// seat buckles driver into vehicle and inserts it into the seat container
func (h *harness) seat(driver, vehicle core.Entity) {
	h.t.Helper()
	require.True(h.t, h.buckle.TryBuckle(driver, vehicle), "buckle failed")
	seat := h.vehicleState(vehicle).SeatContainer
	require.True(h.t, h.container.Insert(vehicle, seat, driver), "seat insert failed")
}

func (h *harness) stat(key string) int64 {
	return h.w.Resources.Status.Ints.Get(key).Load()
}

func (h *harness) placeholders(user, blocking core.Entity) int {
	return h.virtual.CountInHands(user, blocking)
}

func (h *harness) animated(v core.Entity) bool {
	return h.appearance.Bool(v, parameter.AppearanceVehicleAnimated)
}
