package game

import "github.com/plus3/starfall/ecs"

type trackedBullet struct {
	ecs.EntityId
	*Bullet
	*Position
	*Velocity
}

// BulletTrackingSystem steers tracking bullets toward the player and blows
// them up when their fuse runs out. It does nothing without a live player.
// Two passes run per frame: one for bullets that damage the player and one,
// slower, for bullets that damage enemies.
type BulletTrackingSystem struct {
	// Faction selects the bullets this pass handles by who they damage.
	Faction Faction
	Speed   float32

	Config ecs.Singleton[Config]
	Assets ecs.Singleton[Assets]
	Sounds ecs.Singleton[QueuedSounds]
	Player ecs.Singleton[PlayerEntity]

	Bullets ecs.Query[trackedBullet]
	Players ecs.Query[struct {
		*Position
		*Player
	}]
}

func (s *BulletTrackingSystem) Execute(frame *ecs.UpdateFrame) {
	id, ok := s.Player.Get().Id()
	if !ok {
		return
	}
	player := s.Players.Get(id)
	if player == nil {
		return
	}
	cfg := s.Config.Get()

	for bullet := range s.Bullets.Values() {
		t, ok := bullet.Ty.(TrackingBullet)
		if !ok || bullet.DamagesWho != s.Faction {
			continue
		}

		if t.Remaining == 0 {
			spawnExplosion(frame, cfg, s.Assets.Get(), bullet.Position.Vec2)
			frame.Commands.Delete(bullet.EntityId)
			queueSound(cfg, s.Assets.Get(), s.Sounds.Get(), SoundBoom)
			continue
		}
		bullet.Ty = TrackingBullet{Remaining: t.Remaining - 1}

		dir := player.Position.Sub(bullet.Position.Vec2).Normalize()
		steer := dir.Scale(s.Speed).Sub(bullet.Velocity.Vec2).Scale(cfg.TrackingSteer)
		bullet.Velocity.Vec2 = bullet.Velocity.Add(steer)
	}
}
