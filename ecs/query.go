package ecs

import (
	"iter"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minParallelChunk is the smallest number of entities handed to one worker by ParEach.
const minParallelChunk = 256

// Query wraps a View with caching optimizations for repeated iteration.
// Queries cache matching archetypes and snapshot entity/component pointers
// once per frame, before their system runs.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute builds the entity and component snapshot for this frame.
// Called automatically by the Scheduler before the owning system runs.
func (q *Query[T]) Execute() {
	q.invalidateIfNeeded()
	q.ensureArchetypeCache()

	clear(q.cachedComponents)
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) invalidateIfNeeded() {
	currentCount := len(q.storage.archetypes)
	if currentCount != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = currentCount
	}
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.cachedArchetypes != nil {
		return
	}

	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.archetypes {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

func (q *Query[T]) mustBeExecuted(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted("Iter")

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted("Values")

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	q.mustBeExecuted("Len")
	return len(q.cachedEntities)
}

// Get returns the view of a single entity straight from storage, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

// GetRef returns the view of the entity behind ref, or nil.
func (q *Query[T]) GetRef(ref *EntityRef) *T {
	return q.view.GetRef(ref)
}

// ParEach calls fn for every entity of the snapshot, splitting the work over
// up to workers goroutines (GOMAXPROCS when workers <= 0). fn must only touch
// the entity it is given. Small snapshots run on the calling goroutine.
func (q *Query[T]) ParEach(workers int, fn func(EntityId, T)) {
	q.mustBeExecuted("ParEach")

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := len(q.cachedEntities)
	chunk := max((n+workers-1)/workers, minParallelChunk)
	if workers == 1 || n <= chunk {
		for i := range n {
			fn(q.cachedEntities[i], q.cachedComponents[i])
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(q.cachedEntities[i], q.cachedComponents[i])
			}
			return nil
		})
	}
	_ = g.Wait()
}
