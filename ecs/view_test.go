package ecs_test

import (
	"testing"

	"github.com/plus3/starfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewIterMatchesRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{Current: 5})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	seen := make(map[float32]float32)
	for _, item := range view.Iter() {
		seen[item.Position.X] = item.Velocity.DX
	}
	assert.Equal(t, map[float32]float32{1: 1, 2: 2}, seen)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)

	for iterId, item := range view.Iter() {
		assert.Equal(t, id, iterId)
		assert.Equal(t, id, item.EntityId)
	}

	got := view.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, id, got.EntityId)
}

func TestViewOptionalComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	plain := storage.Spawn(Position{X: 1})
	tagged := storage.Spawn(Position{X: 2}, Tagged{})

	view := ecs.NewView[struct {
		*Position
		Tagged *Tagged `ecs:"optional"`
	}](storage)

	assert.Nil(t, view.Get(plain).Tagged)
	assert.NotNil(t, view.Get(tagged).Tagged)

	count := 0
	for range view.Values() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewGetRejectsDeadAndMismatchedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	onlyPos := storage.Spawn(Position{})
	dead := storage.Spawn(Position{}, Velocity{})
	require.NoError(t, storage.Delete(dead))

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(onlyPos))
	assert.Nil(t, view.Get(dead))
	assert.Nil(t, view.Get(ecs.NewEntityId(77, 0, 1)))
}

func TestViewMutationIsVisibleInStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)
	for _, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
	}

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}{Position: &Position{X: 3}})

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestViewRejectsMalformedStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}
