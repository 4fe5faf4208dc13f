package ecs

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands buffers structural changes issued while systems iterate. The
// buffer is applied once per frame by Flush, after every system has run.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
	deleted *intmap.Set[EntityId]
	moved   *intmap.Map[EntityId, EntityId]
}

func newCommands() *Commands {
	return &Commands{
		deleted: intmap.NewSet[EntityId](16),
		moved:   intmap.New[EntityId, EntityId](16),
	}
}

// NewCommands creates an empty command buffer for use outside a Scheduler.
func NewCommands() *Commands {
	return newCommands()
}

type spawnCommand struct {
	components []any
	done       func(EntityId)
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnThen queues a spawn and calls done with the new id once it exists.
func (c *Commands) SpawnThen(done func(EntityId), components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components, done: done})
}

// Delete queues an entity deletion operation. Queuing the same entity more
// than once within a frame deletes it once.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to storage and resets the buffer.
// Deletes run first, then component removals, additions, spawns and deferred
// functions. Operations on entities that no longer exist are skipped; their
// errors are joined into the returned error.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error

	for _, id := range c.deletes {
		if c.deleted.Has(id) {
			continue
		}
		if err := storage.Delete(id); err != nil {
			errs = append(errs, fmt.Errorf("delete entity %#x: %w", uint64(id), err))
		}
		c.deleted.Add(id)
	}

	for _, cmd := range c.removes {
		if c.deleted.Has(cmd.entity) {
			continue
		}
		current := c.resolve(cmd.entity)
		newId, err := storage.RemoveComponent(current, cmd.compType)
		if err != nil {
			errs = append(errs, fmt.Errorf("remove %s from entity %#x: %w", cmd.compType, uint64(cmd.entity), err))
			continue
		}
		c.moved.Put(cmd.entity, newId)
	}

	for _, cmd := range c.adds {
		if c.deleted.Has(cmd.entity) {
			continue
		}
		current := c.resolve(cmd.entity)
		newId, err := storage.AddComponent(current, cmd.component)
		if err != nil {
			errs = append(errs, fmt.Errorf("add %T to entity %#x: %w", cmd.component, uint64(cmd.entity), err))
			continue
		}
		c.moved.Put(cmd.entity, newId)
	}

	for _, cmd := range c.spawns {
		id := storage.Spawn(cmd.components...)
		if cmd.done != nil {
			cmd.done(id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.adds)
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
	c.deleted.Clear()
	c.moved.Clear()

	return errors.Join(errs...)
}

// resolve maps an id queued earlier this frame to where earlier component
// changes moved the entity.
func (c *Commands) resolve(id EntityId) EntityId {
	if current, ok := c.moved.Get(id); ok {
		return current
	}
	return id
}
