package engine

// @lixen: #dev{base(core),feature[crop(system)],feature[vfx(system)]}

import (
	"sync"

	"github.com/lixenwraith/farmcycle/core"
	"github.com/lixenwraith/farmcycle/event"
)

// World is the entity arena: stable integer handles, typed component stores, and
// the priority-ordered system list
// Owned by the simulation goroutine; other goroutines communicate through the event queue
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	Components ComponentStore
	Resources  *Resource

	systems []System
}

// NewWorld creates a world around the given resource bundle
func NewWorld(res *Resource) *World {
	return &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Components:   newComponentStore(),
		Resources:    res,
		systems:      make([]System, 0),
	}
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

// HasEntity reports whether the entity exists and has not been destroyed
func (w *World) HasEntity(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// DestroyEntity removes the entity, all its components, and its collider shapes
// Destroying an already destroyed entity is a no-op
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	_, ok := w.alive[e]
	delete(w.alive, e)
	w.mu.Unlock()
	if !ok {
		return
	}

	for _, s := range w.Components.all() {
		s.RemoveEntity(e)
	}
	if w.Resources != nil && w.Resources.Colliders != nil {
		w.Resources.Colliders.RemoveColliders(e)
	}
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	w.alive = make(map[core.Entity]struct{})
	for _, s := range w.Components.all() {
		s.ClearAllComponents()
	}
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Stable insertion sort, small N
	for i := len(w.systems) - 1; i > 0 && w.systems[i-1].Priority() > w.systems[i].Priority(); i-- {
		w.systems[i-1], w.systems[i] = w.systems[i], w.systems[i-1]
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

// Update runs all systems sequentially
func (w *World) Update() {
	for _, system := range w.Systems() {
		system.Update()
	}
}

// FrameNumber returns the current frame index
func (w *World) FrameNumber() int64 {
	if w.Resources == nil || w.Resources.Time == nil {
		return 0
	}
	return w.Resources.Time.FrameNumber
}

// PushEvent stamps the current frame and enqueues the event
func (w *World) PushEvent(t event.EventType, payload any) {
	w.Resources.Event.Queue.Push(event.GameEvent{
		Type:    t,
		Payload: payload,
		Frame:   w.FrameNumber(),
	})
}
