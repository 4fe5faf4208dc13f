package ecs

// UpdateFrame is handed to every system during one Scheduler pass. Structural
// changes go through Commands and become visible after the pass completes.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  commands,
		Storage:   storage,
	}
}
