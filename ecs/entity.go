package ecs

import "errors"

// ErrEntityNotFound is returned when an operation targets an entity that does
// not exist, was already deleted, or whose slot has since been recycled.
var ErrEntityNotFound = errors.New("ecs: entity not found")

const (
	indexBits      = 20
	generationBits = 12

	indexMask      = 1<<indexBits - 1
	generationMask = 1<<generationBits - 1

	// MaxEntitiesPerArchetype is the number of addressable slots in one archetype.
	MaxEntitiesPerArchetype = 1 << indexBits
)

// EntityId encodes the archetype ID (upper 32 bits), the slot generation
// (next 12 bits) and the slot index (lower 20 bits)
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID, slot generation and slot index
func NewEntityId(archetypeId uint32, generation uint16, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 |
		uint64(generation&generationMask)<<indexBits |
		uint64(index&indexMask))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint16 {
	return uint16(e>>indexBits) & generationMask
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & indexMask
}

// EntityRef is a stable reference to an entity. It survives archetype moves
// and is zeroed when the entity is deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
