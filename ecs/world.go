package ecs

import (
	"github.com/milk9111/spikerun/common"
	"github.com/milk9111/spikerun/ecs/component"
)

// World owns entities, their components and the simulation clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore

	timestep float64
	elapsed  float64
	tick     uint64
}

// NewWorld creates an empty ECS world stepping at the default tick rate.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]componentStore),
		timestep: common.Timestep,
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity releases an entity and drops all of its components. It
// reports false if the handle was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Timestep is the fixed simulation step in seconds.
func (w *World) Timestep() float64 {
	return w.timestep
}

// SetTimestep changes the fixed step. Non-positive values are ignored.
func (w *World) SetTimestep(dt float64) {
	if dt > 0 {
		w.timestep = dt
	}
}

// Time is the simulated time in seconds since the world was created.
func (w *World) Time() float64 {
	return w.elapsed
}

// Tick is the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Advance moves the clock forward by one timestep.
func (w *World) Advance() {
	w.tick++
	w.elapsed = float64(w.tick) * w.timestep
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[kind.ID()] = s
	return s
}

// Add attaches or replaces a component value on an entity.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e.id(), value)
	return nil
}

// Get returns the component pointer stored for an entity.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	return s != nil && s.has(e.id())
}

// Remove detaches a component, reporting whether anything was removed.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	return s != nil && s.remove(e.id())
}

// Count returns how many entities carry the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0
	}
	return s.len()
}
