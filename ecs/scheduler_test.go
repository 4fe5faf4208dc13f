package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/starfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthTotalSystem struct {
	Entities    ecs.Query[struct{ *Health }]
	TotalHealth int
}

func (s *HealthTotalSystem) Execute(frame *ecs.UpdateFrame) {
	s.TotalHealth = 0
	for item := range s.Entities.Values() {
		s.TotalHealth += item.Health.Current
	}
}

type CounterSystem struct {
	Counter ecs.Singleton[Score]
}

func (s *CounterSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Counter.Get() += 1
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	health := &HealthTotalSystem{}
	scheduler.Register(movement)
	scheduler.Register(health)

	id := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
	storage.Spawn(Health{Current: 100, Max: 100})

	require.NoError(t, scheduler.Once(1.0))
	require.NoError(t, scheduler.Once(1.0))

	assert.Equal(t, 2, movement.ExecuteCount)
	assert.Equal(t, 100, health.TotalHealth)
	assert.Equal(t, Position{X: 2, Y: 4}, *ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, uint64(2), scheduler.Tick())
}

func TestSchedulerRefreshesQueriesBetweenSystems(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	health := &HealthTotalSystem{}
	scheduler.Register(&spawnHealthSystem{})
	scheduler.Register(health)

	require.NoError(t, scheduler.Once(1.0))
	assert.Equal(t, 0, health.TotalHealth, "spawns land after the frame")

	require.NoError(t, scheduler.Once(1.0))
	assert.Equal(t, 10, health.TotalHealth)
}

type spawnHealthSystem struct{}

func (s *spawnHealthSystem) Execute(frame *ecs.UpdateFrame) {
	if frame.Tick == 1 {
		frame.Commands.Spawn(Health{Current: 10, Max: 10})
	}
}

func TestSchedulerInitializesSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage, 40)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CounterSystem{})

	require.NoError(t, scheduler.Once(0))
	require.NoError(t, scheduler.Once(0))

	var score *Score
	require.True(t, storage.ReadSingleton(&score))
	assert.Equal(t, Score(42), *score)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CounterSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := scheduler.Run(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, scheduler.Tick(), uint64(0))
}
