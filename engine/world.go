package engine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/event"
	"github.com/lixenwraith/vi-garage/parameter"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}
	removing     map[core.Entity]struct{} // Entities inside DestroyEntity, guards re-entry

	// Global Resources
	Resources *Resource

	Components ComponentStore
	allStores  []AnyStore

	eventQueue *event.EventQueue
	router     *event.Router
	frame      atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world with all component stores and base resources
func NewWorld() *World {
	queue := event.NewEventQueue()
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		removing:     make(map[core.Entity]struct{}),
		eventQueue:   queue,
		router:       event.NewRouter(queue),
		systems:      make([]System, 0),
	}
	w.Components, w.allStores = newComponentStore()
	w.Resources = newResource(queue)
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.alive[id] = struct{}{}
	return id
}

// Exists reports whether the entity is allocated and not yet destroyed
func (w *World) Exists(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// DestroyEntity removes all components associated with an entity
// EventEntityRemoving is dispatched synchronously first so owners can tear down
// state that references other entities while the components are still readable
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	if _, ok := w.alive[e]; !ok {
		w.mu.Unlock()
		return
	}
	if _, busy := w.removing[e]; busy {
		w.mu.Unlock()
		return
	}
	w.removing[e] = struct{}{}
	w.mu.Unlock()

	w.Raise(event.EventEntityRemoving, &event.EntityPayload{Entity: e})

	for _, store := range w.allStores {
		store.RemoveEntity(e)
	}

	w.mu.Lock()
	delete(w.removing, e)
	delete(w.alive, e)
	w.mu.Unlock()
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	w.alive = make(map[core.Entity]struct{})
	w.removing = make(map[core.Entity]struct{})
	for _, store := range w.allStores {
		store.ClearAllComponents()
	}
	_ = w.eventQueue.Consume()
}

// AddSystem adds a system to the world and sorts by priority
// Systems implementing event.Handler are registered with the router in insertion order
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
	w.mu.Unlock()

	if h, ok := system.(event.Handler); ok {
		w.router.Register(h)
	}
}

// Systems returns a copy of all registered systems in priority order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// System returns a registered system by name
func (w *World) System(name string) (System, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, s := range w.systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Router exposes the event router for direct handler registration
func (w *World) Router() *event.Router {
	return w.router
}

// Raise delivers a directed event to all handlers before returning
// Used for cancellable attempts and lifecycle events whose result the caller reads back
func (w *World) Raise(eventType event.EventType, payload any) {
	w.router.Dispatch(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frame.Load(),
	})
}

// PushEvent queues a game event for the next dispatch pass
// This is the hot-path for broadcast notifications
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frame.Load(),
	})
}

// DispatchEvents drains the event queue through the router
// Events pushed by handlers during the drain are delivered in the same call
func (w *World) DispatchEvents() int {
	total := 0
	for i := 0; i < parameter.MaxDispatchPasses; i++ {
		n := w.router.DispatchAll()
		total += n
		if n == 0 {
			break
		}
	}
	return total
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires a lock on the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// Update runs all systems sequentially
func (w *World) Update() {
	w.RunSafe(func() {
		w.UpdateLocked()
	})
}

// UpdateLocked runs all systems assuming the caller already holds updateMutex
func (w *World) UpdateLocked() {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update()
	}
}

// FrameNumber returns the current frame index
func (w *World) FrameNumber() int64 {
	return w.frame.Load()
}

// AdvanceFrame increments the frame counter, called once per tick by the scheduler
func (w *World) AdvanceFrame() int64 {
	return w.frame.Add(1)
}
