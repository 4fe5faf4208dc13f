package ecs_test

import "github.com/plus3/starfall/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

// Health is kept separate from the game's HP so the store is tested without
// any gameplay rules attached.
type Health struct {
	Current int
	Max     int
}

type Callsign struct {
	Value string
}

// Tagged is a zero-sized marker, the same shape as a deflection tag.
type Tagged struct{}

type Score int32

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Callsign](registry)
	ecs.RegisterComponent[Tagged](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[int](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[float64](registry)
	return registry
}
