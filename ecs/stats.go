package ecs

import (
	"reflect"
	"sort"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []reflect.Type
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	Id          uint32
	Types       []reflect.Type
	EntityCount int
}

// CollectStats walks the storage and reports entity counts per archetype.
// Archetypes appear in descending entity count order.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for id, archetype := range s.archetypes {
		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			Id:          id,
			Types:       archetype.Types(),
			EntityCount: count,
		})
	}
	sort.Slice(stats.ArchetypeBreakdown, func(i, j int) bool {
		a, b := stats.ArchetypeBreakdown[i], stats.ArchetypeBreakdown[j]
		if a.EntityCount != b.EntityCount {
			return a.EntityCount > b.EntityCount
		}
		return a.Id < b.Id
	})

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ)
	}
	sort.Sort(byTypeName(stats.SingletonTypes))

	return stats
}
