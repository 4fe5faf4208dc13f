package game

import "github.com/plus3/starfall/ecs"

type mover struct {
	*Position
	*Velocity
}

// MovementSystem integrates velocity into position.
type MovementSystem struct {
	Config ecs.Singleton[Config]
	Movers ecs.Query[mover]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.Movers.ParEach(s.Config.Get().Workers, func(_ ecs.EntityId, m mover) {
		m.Position.Vec2 = m.Position.Add(m.Velocity.Vec2)
	})
}

type health struct {
	*HP
}

// IFrameSystem counts down hit invincibility.
type IFrameSystem struct {
	Config  ecs.Singleton[Config]
	Healths ecs.Query[health]
}

func (s *IFrameSystem) Execute(frame *ecs.UpdateFrame) {
	s.Healths.ParEach(s.Config.Get().Workers, func(_ ecs.EntityId, h health) {
		if h.HP.IFrames > 0 {
			h.HP.IFrames--
		}
	})
}
