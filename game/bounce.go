package game

import "github.com/plus3/starfall/ecs"

// BounceBulletSystem reflects bouncing bullets off the left and right screen
// edges and removes the ones that ran out of bounces.
type BounceBulletSystem struct {
	Config  ecs.Singleton[Config]
	Bullets ecs.Query[trackedBullet]
}

func (s *BounceBulletSystem) Execute(frame *ecs.UpdateFrame) {
	width := s.Config.Get().ScreenWidth

	for bullet := range s.Bullets.Values() {
		b, ok := bullet.Ty.(BouncingBullet)
		if !ok {
			continue
		}

		pos, vel := bullet.Position.Vec2, bullet.Velocity.Vec2
		if !(pos.X > width && vel.X > 0) && !(pos.X < 0 && vel.X < 0) {
			continue
		}

		if b.Remaining == 0 {
			frame.Commands.Delete(bullet.EntityId)
			continue
		}
		bullet.Velocity.X = -vel.X
		bullet.Ty = BouncingBullet{Remaining: b.Remaining - 1}
	}
}
