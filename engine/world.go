package engine

import (
	"sort"
	"sync"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
)

// World contains all visual entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity
	alive        map[core.Entity]struct{}

	// Global Resources
	Resources *Resources

	// Typed stores, registered in allStores for uniform cleanup
	Components ComponentStore
	allStores  []AnyStore

	// Domain ID -> entity mapping
	Index *Index

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world with its own event queues
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		alive:        make(map[core.Entity]struct{}),
		Resources:    NewResources(),
		Index:        NewIndex(),
		systems:      make([]System, 0),
	}

	initComponentStores(w)

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

// DestroyEntity removes all components associated with an entity
// Index bookkeeping is the caller's job; morphisms drop the mapping first
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.Lock()
	delete(w.alive, e)
	w.mu.Unlock()

	for _, store := range w.allStores {
		store.Remove(e)
	}
}

// Alive reports whether an entity was created and not yet destroyed
func (w *World) Alive(e core.Entity) bool {
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

// Clear removes all entities, components and index mappings
func (w *World) Clear() {
	w.mu.Lock()
	w.nextEntityID = 1
	w.alive = make(map[core.Entity]struct{})
	w.mu.Unlock()

	for _, store := range w.allStores {
		store.Clear()
	}
	w.Index.Clear()
}

// AddSystem adds a system to the world and keeps systems ordered by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns a copy of all registered systems
// Used by Scheduler for event handler auto-registration
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update runs all systems sequentially
func (w *World) Update() {
	w.RunSafe(w.UpdateLocked)
}

// UpdateLocked runs all systems assuming the caller already holds updateMutex
func (w *World) UpdateLocked() {
	for _, system := range w.Systems() {
		system.Update()
	}
}

// FrameNumber returns the current frame index
func (w *World) FrameNumber() int64 {
	return w.Resources.Time.FrameNumber()
}

// PushEvent emits an event on the inbound queue, dispatched on the next drain
// This is the path for system-to-system feedback (sound requests)
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resources.Inbound.Emit(eventType, payload, w.FrameNumber())
}

// PushOutbound emits an event towards the domain side
func (w *World) PushOutbound(eventType event.EventType, payload any) {
	w.Resources.Outbound.Emit(eventType, payload, w.FrameNumber())
}
