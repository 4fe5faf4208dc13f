package ecs

import "reflect"

// ComponentRegistry maps component types to the column constructors an
// Archetype uses. Storages never share a registry implicitly.
type ComponentRegistry struct {
	columns map[reflect.Type]func() componentColumn
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{columns: make(map[reflect.Type]func() componentColumn)}
}

// RegisterComponent makes T usable as a component. Spawning an entity with an
// unregistered component panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.columns[reflect.TypeFor[T]()] = func() componentColumn {
		return &blockColumn[T]{}
	}
}

// IsRegistered reports whether t has been registered.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.columns[t]
}
