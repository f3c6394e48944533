package engine

import (
	"sync"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/parameter"
)

// Store holds one component type as a sparse set
// values[i] belongs to dense[i]; slot maps an entity to its dense position
// Removal swaps the last element into the hole, so iteration order is not stable
type Store[T any] struct {
	mu     sync.RWMutex
	slot   map[core.Entity]int
	dense  []core.Entity
	values []T
}

// NewStore creates an empty store for T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		slot:   make(map[core.Entity]int, parameter.StoreInitialCapacity),
		dense:  make([]core.Entity, 0, parameter.StoreInitialCapacity),
		values: make([]T, 0, parameter.StoreInitialCapacity),
	}
}

// Set inserts or replaces the component of e
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.slot[e]; ok {
		s.values[i] = val
		return
	}
	s.slot[e] = len(s.dense)
	s.dense = append(s.dense, e)
	s.values = append(s.values, val)
}

// Get returns a copy of the component of e
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.slot[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// Remove deletes the component of e, no-op if absent
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(e)
}

func (s *Store[T]) removeLocked(e core.Entity) {
	i, ok := s.slot[e]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.dense[last]
		s.dense[i] = moved
		s.values[i] = s.values[last]
		s.slot[moved] = i
	}

	var zero T
	s.values[last] = zero // release references held by T
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	delete(s.slot, e)
}

// Has reports whether e has this component
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slot[e]
	return ok
}

// All returns a copy of the entities holding this component
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Entity, len(s.dense))
	copy(out, s.dense)
	return out
}

// Count returns the number of entities holding this component
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dense)
}

// Clear removes every component
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = make(map[core.Entity]int, parameter.StoreInitialCapacity)
	s.dense = s.dense[:0]
	clear(s.values)
	s.values = s.values[:0]
}
