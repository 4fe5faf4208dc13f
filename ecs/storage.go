package ecs

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"unsafe"
	"weak"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// CreateEntityRef returns the stable reference for id, creating it on first use.
// Returns nil if id does not name a live entity.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Alive(id) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))

	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	archetype := s.archetypes[ref.Id.ArchetypeId()]
	if archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sort.Sort(byTypeName(types))
	return s.archetypes[hashTypesToUint32(types)]
}

// Archetypes returns every archetype ordered by id.
func (s *Storage) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		out = append(out, archetype)
	}
	slices.SortFunc(out, func(a, b *Archetype) int { return cmp.Compare(a.id, b.id) })
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	return s.archetypeFor(types).Spawn(components)
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id)
}

// Delete removes all data related to the entity ID. Deleting an entity that
// does not exist returns ErrEntityNotFound and leaves the storage untouched.
func (s *Storage) Delete(id EntityId) error {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return ErrEntityNotFound
	}
	return archetype.Delete(id)
}

// AddComponent attaches component to the entity, moving it to the matching
// archetype. Adding a type the entity already owns overwrites the value in place.
func (s *Storage) AddComponent(id EntityId, component any) (EntityId, error) {
	oldArchetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !oldArchetype.Alive(id) {
		return 0, ErrEntityNotFound
	}

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	if existing := oldArchetype.GetComponent(id, compType); existing != nil {
		value := reflect.ValueOf(component)
		if value.Kind() == reflect.Ptr {
			value = value.Elem()
		}
		reflect.ValueOf(existing).Elem().Set(value)
		return id, nil
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id, typ))
		}
	}

	return s.move(id, oldArchetype, s.archetypeFor(newTypes), components), nil
}

// RemoveComponent detaches the component type from the entity. Removing the
// last component deletes the entity and returns a zero id.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) (EntityId, error) {
	oldArchetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !oldArchetype.Alive(id) {
		return 0, ErrEntityNotFound
	}
	if !oldArchetype.HasComponent(compType) {
		return id, nil
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		return 0, oldArchetype.Delete(id)
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(id, typ))
	}

	return s.move(id, oldArchetype, s.archetypeFor(newTypes), components), nil
}

// move respawns the entity in newArchetype and carries its EntityRef along.
func (s *Storage) move(id EntityId, oldArchetype, newArchetype *Archetype, components []any) EntityId {
	weakPtr, hasRef := oldArchetype.refs.Get(id)
	if hasRef {
		oldArchetype.refs.Del(id)
	}

	newId := newArchetype.Spawn(components)
	if err := oldArchetype.Delete(id); err != nil {
		panic(fmt.Sprintf("ecs: moving entity %d: %v", id, err))
	}

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
			newArchetype.refs.Put(newId, weakPtr)
		}
	}

	return newId
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}

	return archetype.GetComponent(id, compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id) {
		return false
	}
	return archetype.HasComponent(compType)
}

// Compact compacts every archetype. See Archetype.Compact.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		archetype.Compact()
	}
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value of that type.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("cannot add nil singleton")
	}

	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// RemoveSingleton drops the singleton of the given type.
func (s *Storage) RemoveSingleton(typ reflect.Type) {
	delete(s.singletons, typ)
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// ReadSingleton points *target (a **T) at the stored singleton of type T.
// Returns false if no singleton of that type exists.
func (s *Storage) ReadSingleton(target any) bool {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.singletons[targetValue.Elem().Type().Elem()]
	if entry == nil {
		return false
	}

	targetValue.Elem().Set(entry.value)
	return true
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)

		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Components can be structs or primitives, never reference-like kinds
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the typed component of the entity, or nil if absent.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
