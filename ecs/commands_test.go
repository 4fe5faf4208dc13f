package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/starfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnSystem struct{}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type deleteSystem struct {
	targets []ecs.EntityId
}

func (s *deleteSystem) Execute(frame *ecs.UpdateFrame) {
	for _, id := range s.targets {
		frame.Commands.Delete(id)
	}
}

func countPositions(storage *ecs.Storage) int {
	count := 0
	for range ecs.NewView[struct{ *Position }](storage).Iter() {
		count++
	}
	return count
}

func TestCommandsSpawnAppliedAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&spawnSystem{})

	assert.Equal(t, 0, countPositions(storage))
	require.NoError(t, scheduler.Once(1.0))
	assert.Equal(t, 2, countPositions(storage))
}

func TestCommandsDeleteTwiceInOneFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})
	survivor := storage.Spawn(Position{X: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&deleteSystem{targets: []ecs.EntityId{id}})
	scheduler.Register(&deleteSystem{targets: []ecs.EntityId{id}})

	require.NoError(t, scheduler.Once(1.0))
	assert.False(t, storage.Alive(id))
	assert.True(t, storage.Alive(survivor))
}

func TestCommandsDeleteMissingEntityIsReported(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})
	require.NoError(t, storage.Delete(id))
	survivor := storage.Spawn(Position{X: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&deleteSystem{targets: []ecs.EntityId{id}})
	scheduler.Register(&spawnSystem{})

	err := scheduler.Once(1.0)
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)

	// The rest of the buffer was still applied.
	assert.True(t, storage.Alive(survivor))
	assert.Equal(t, 3, countPositions(storage))
}

func TestCommandsSkipChangesToDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	commands := ecs.NewCommands()
	commands.AddComponent(id, Velocity{DX: 1})
	commands.RemoveComponent(id, reflect.TypeFor[Position]())
	commands.Delete(id)
	commands.Spawn(Health{Current: 100, Max: 100})
	assert.Equal(t, 4, commands.Pending())

	require.NoError(t, commands.Flush(storage))
	assert.Equal(t, 0, commands.Pending())
	assert.False(t, storage.Alive(id))

	count := 0
	for range ecs.NewView[struct{ *Health }](storage).Iter() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestCommandsRemoveThenAddOnSameEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 2}, Velocity{DX: 1})
	ref := storage.CreateEntityRef(id)

	commands := ecs.NewCommands()
	commands.AddComponent(id, Tagged{})
	commands.AddComponent(id, Health{Current: 1})
	commands.RemoveComponent(id, reflect.TypeFor[Velocity]())
	require.NoError(t, commands.Flush(storage))

	current, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.True(t, storage.HasComponent(current, reflect.TypeFor[Tagged]()))
	assert.True(t, storage.HasComponent(current, reflect.TypeFor[Health]()))
	assert.False(t, storage.HasComponent(current, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, current).X)
}

func TestCommandsSpawnThenAndDefer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	var spawned ecs.EntityId
	var order []string
	commands.Defer(func() { order = append(order, "defer") })
	commands.SpawnThen(func(id ecs.EntityId) {
		spawned = id
		order = append(order, "spawn")
	}, Position{X: 7})

	require.NoError(t, commands.Flush(storage))
	assert.Equal(t, []string{"spawn", "defer"}, order)
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, spawned).X)
}
