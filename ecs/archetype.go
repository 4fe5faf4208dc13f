package ecs

import (
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types
type Archetype struct {
	id          uint32
	types       []reflect.Type
	storages    []componentColumn
	generations []uint16
	refs        *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentColumn, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn creates a new entity in this archetype with the given components
// and returns its id.
func (a *Archetype) Spawn(components []any) EntityId {
	storagePos := -1
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		for idx, typ := range a.types {
			if typ == compType {
				storagePos = a.storages[idx].Append(comp)
			}
		}
	}

	if storagePos < 0 {
		panic("archetype spawn received no matching components")
	}
	if storagePos >= MaxEntitiesPerArchetype {
		panic("archetype " + a.String() + " is full")
	}

	for len(a.generations) <= storagePos {
		a.generations = append(a.generations, 0)
	}

	return a.entityId(uint32(storagePos))
}

func (a *Archetype) entityId(index uint32) EntityId {
	return NewEntityId(a.id, a.generations[index], index)
}

// Alive reports whether id names a live entity of this archetype.
func (a *Archetype) Alive(id EntityId) bool {
	if id.ArchetypeId() != a.id || len(a.storages) == 0 {
		return false
	}
	index := id.Index()
	if int(index) >= len(a.generations) || a.generations[index] != id.Generation() {
		return false
	}
	return a.storages[0].Has(int(index))
}

// GetComponent returns the component of the given type for the entity, or nil
// if the entity is not alive or the archetype lacks the type.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	idx := slices.Index(a.types, compType)
	if idx == -1 || !a.Alive(id) {
		return nil
	}

	return a.storages[idx].Get(int(id.Index()))
}

// Delete removes the entity's components and retires its id. The slot is
// reused by a later spawn under the next generation.
func (a *Archetype) Delete(id EntityId) error {
	if !a.Alive(id) {
		return ErrEntityNotFound
	}

	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	index := id.Index()
	for _, storage := range a.storages {
		storage.Delete(int(index))
	}
	a.generations[index] = (a.generations[index] + 1) & generationMask
	return nil
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Compact reorganizes all component storage to eliminate empty slots.
// Raw EntityIds held outside the store are invalidated; EntityRefs are
// updated to point to the new slots.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	oldGenerations := a.generations
	a.generations = make([]uint16, len(indexMap))
	for oldIdx, newIdx := range indexMap {
		a.generations[newIdx] = oldGenerations[oldIdx]
	}

	updatedRefs := make(map[EntityId]weak.Pointer[EntityRef], len(indexMap))
	for oldIdx, newIdx := range indexMap {
		oldEntityId := NewEntityId(a.id, oldGenerations[oldIdx], uint32(oldIdx))
		weakPtr, ok := a.refs.Get(oldEntityId)
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newEntityId := a.entityId(uint32(newIdx))
			ref.Id = newEntityId
			updatedRefs[newEntityId] = weakPtr
		}
	}

	a.refs.Clear()
	for newEntityId, weakPtr := range updatedRefs {
		a.refs.Put(newEntityId, weakPtr)
	}
}

// Iter returns an iterator over all valid EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(a.entityId(uint32(index))) {
				return
			}
		}
	}
}
