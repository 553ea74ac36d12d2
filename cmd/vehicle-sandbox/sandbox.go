package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/parameter"
	"github.com/lixenwraith/vi-garage/system"
)

var fleet = []string{"ATV", "Ambulance", "SecurityCart", "Janicart"}

// Sandbox drives one human around a small fleet from the terminal
type Sandbox struct {
	world  *engine.World
	screen tcell.Screen

	spawn     *system.SpawnSystem
	buckle    *system.BuckleSystem
	container *system.ContainerSystem
	mover     *system.MoverSystem
	hands     *system.HandsSystem
	actions   *system.ActionSystem

	human    core.Entity
	vehicles []core.Entity
	selected int
	message  string
}

// NewSandbox spawns the scene; the world must already have systems installed
func NewSandbox(world *engine.World, screen tcell.Screen) (*Sandbox, error) {
	sb := &Sandbox{world: world, screen: screen}

	var ok bool
	if sb.spawn, ok = systemAs[*system.SpawnSystem](world, "spawn"); !ok {
		return nil, fmt.Errorf("spawn system missing")
	}
	if sb.buckle, ok = systemAs[*system.BuckleSystem](world, "buckle"); !ok {
		return nil, fmt.Errorf("buckle system missing")
	}
	if sb.container, ok = systemAs[*system.ContainerSystem](world, "container"); !ok {
		return nil, fmt.Errorf("container system missing")
	}
	if sb.mover, ok = systemAs[*system.MoverSystem](world, "mover"); !ok {
		return nil, fmt.Errorf("mover system missing")
	}
	if sb.hands, ok = systemAs[*system.HandsSystem](world, "hands"); !ok {
		return nil, fmt.Errorf("hands system missing")
	}
	if sb.actions, ok = systemAs[*system.ActionSystem](world, "action"); !ok {
		return nil, fmt.Errorf("action system missing")
	}

	var err error
	world.RunSafe(func() {
		if sb.human, err = sb.spawn.Spawn("Human", 2, 2); err != nil {
			return
		}
		var card core.Entity
		if card, err = sb.spawn.Spawn("IDCardCaptain", 2, 2); err != nil {
			return
		}
		sb.hands.PickUp(sb.human, card)
		world.Resources.Listener.Entity = sb.human

		for i, id := range fleet {
			var v core.Entity
			if v, err = sb.spawn.Spawn(id, 6+i*6, 5); err != nil {
				return
			}
			sb.vehicles = append(sb.vehicles, v)
		}
	})
	if err != nil {
		return nil, err
	}
	sb.message = "Tab select  b buckle  e seat  h horn  s siren  x drop  d destroy  m mute  q quit"
	return sb, nil
}

func systemAs[T any](world *engine.World, name string) (T, bool) {
	var zero T
	sys, ok := world.System(name)
	if !ok {
		return zero, false
	}
	typed, ok := sys.(T)
	return typed, ok
}

// Run polls input and redraws after every tick until quit
func (sb *Sandbox) Run(tickDone <-chan struct{}) {
	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !sb.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				sb.screen.Sync()
			}
		case <-tickDone:
		}
		sb.draw()
	}
}

// handleKey applies one key press, returns false to quit
func (sb *Sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		sb.steer(0, -1)
	case tcell.KeyDown:
		sb.steer(0, 1)
	case tcell.KeyLeft:
		sb.steer(-1, 0)
	case tcell.KeyRight:
		sb.steer(1, 0)
	case tcell.KeyTab:
		if len(sb.vehicles) > 0 {
			sb.selected = (sb.selected + 1) % len(sb.vehicles)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'b':
			sb.toggleBuckle()
		case 'e':
			sb.toggleSeat()
		case 'h':
			sb.perform("ActionHorn")
		case 's':
			sb.perform("ActionSiren")
		case 'x':
			sb.dropHand()
		case 'd':
			sb.destroySelected()
		case 'm':
			sb.toggleMute()
		}
	}
	return true
}

func (sb *Sandbox) current() core.Entity {
	if sb.selected >= len(sb.vehicles) {
		return 0
	}
	return sb.vehicles[sb.selected]
}

func (sb *Sandbox) steer(dx, dy int) {
	sb.world.RunSafe(func() {
		sb.mover.SetIntent(sb.human, dx, dy)
	})
}

func (sb *Sandbox) toggleBuckle() {
	v := sb.current()
	sb.world.RunSafe(func() {
		if sb.buckle.IsBuckled(sb.human) {
			sb.buckle.TryUnbuckle(sb.human, sb.human)
			sb.message = "Unbuckled"
			return
		}
		if sb.buckle.TryBuckle(sb.human, v) {
			sb.message = "Buckled"
		} else {
			sb.message = "Buckle refused"
		}
	})
}

func (sb *Sandbox) toggleSeat() {
	v := sb.current()
	sb.world.RunSafe(func() {
		vc, ok := sb.world.Components.Vehicle.GetComponent(v)
		if !ok {
			return
		}
		if sb.container.Contains(v, vc.SeatContainer, sb.human) {
			sb.container.Remove(v, vc.SeatContainer, sb.human)
			sb.message = "Left seat"
			return
		}
		if sb.container.Insert(v, vc.SeatContainer, sb.human) {
			sb.message = "Seated"
		}
	})
}

func (sb *Sandbox) perform(protoID string) {
	sb.world.RunSafe(func() {
		action, ok := sb.actions.FindAction(sb.human, protoID)
		if !ok {
			sb.message = "No " + protoID
			return
		}
		sb.actions.PerformAction(sb.human, action)
	})
}

func (sb *Sandbox) dropHand() {
	sb.world.RunSafe(func() {
		hands, ok := sb.world.Components.Hands.GetComponent(sb.human)
		if !ok {
			return
		}
		for i, slot := range hands.Slots {
			if slot.Held.Valid() {
				sb.hands.Drop(sb.human, i)
				sb.message = "Dropped " + slot.Name
				return
			}
		}
	})
}

func (sb *Sandbox) destroySelected() {
	v := sb.current()
	if v == 0 {
		return
	}
	sb.world.RunSafe(func() {
		sb.world.DestroyEntity(v)
	})
	sb.vehicles = append(sb.vehicles[:sb.selected], sb.vehicles[sb.selected+1:]...)
	if sb.selected >= len(sb.vehicles) {
		sb.selected = 0
	}
	sb.message = "Destroyed"
}

func (sb *Sandbox) toggleMute() {
	sb.world.RunSafe(func() {
		p := sb.world.Resources.Audio.Player
		if p == nil {
			return
		}
		if p.ToggleMute() {
			sb.message = "Muted"
		} else {
			sb.message = "Unmuted"
		}
	})
}

func (sb *Sandbox) draw() {
	var status []string
	sb.world.RunSafe(func() {
		sb.screen.Clear()
		w := sb.world
		for _, e := range w.Components.Position.GetAllEntities() {
			if w.Components.VirtualItem.HasEntity(e) {
				continue
			}
			pos, _ := w.Components.Position.GetComponent(e)
			meta, _ := w.Components.Meta.GetComponent(e)
			style := tcell.StyleDefault
			if e == sb.current() {
				style = style.Reverse(true)
			}
			if a, ok := w.Components.Appearance.GetComponent(e); ok {
				if animated, _ := a.Data[parameter.AppearanceVehicleAnimated].(bool); animated {
					style = style.Bold(true)
				}
			}
			sb.screen.SetContent(pos.X, pos.Y+1, meta.Glyph, nil, style)
		}

		status = sb.statusLines()
	})

	_, height := sb.screen.Size()
	for i, line := range status {
		drawText(sb.screen, 0, height-len(status)+i, line)
	}
	drawText(sb.screen, 0, 0, sb.message)
	sb.screen.Show()
}

func (sb *Sandbox) statusLines() []string {
	w := sb.world
	v := sb.current()
	meta, _ := w.Components.Meta.GetComponent(v)
	vc, ok := w.Components.Vehicle.GetComponent(v)
	if !ok {
		return []string{"No vehicle", w.Resources.Status.Snapshot()}
	}
	access, _ := w.Components.Access.GetComponent(v)
	driver := "none"
	if vc.Driver.Valid() {
		driver = fmt.Sprintf("#%d", vc.Driver)
	}
	return []string{
		fmt.Sprintf("%s  driver=%s engine=%t siren=%t tags=[%s]",
			meta.Name, driver, vc.EngineRunning, vc.SirenEnabled, strings.Join(access.Sorted(), ",")),
		w.Resources.Status.Snapshot(),
	}
}

func drawText(screen tcell.Screen, x, y int, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
