package game

import "github.com/plus3/starfall/ecs"

type collidingBullet struct {
	ecs.EntityId
	*Bullet
	*Position
	*Velocity
	*Hitbox
	Deflected *Deflected `ecs:"optional"`
}

type collisionTarget struct {
	ecs.EntityId
	*Position
	*Hitbox
	*HP
}

// BulletCollisionSystem resolves bullets against every entity with hit points.
// A bullet damages every valid target it overlaps this frame, leaving one
// explosion per hit, and is then removed. Bullets that hit a player with an
// armed deflector are reflected back instead. Heal from deflected kills never
// revives a player already at zero HP.
type BulletCollisionSystem struct {
	Config ecs.Singleton[Config]
	Assets ecs.Singleton[Assets]
	Sounds ecs.Singleton[QueuedSounds]
	HPText ecs.Singleton[HPText]
	Player ecs.Singleton[PlayerEntity]

	Bullets ecs.Query[collidingBullet]
	Targets ecs.Query[collisionTarget]
	Players ecs.Query[struct {
		*Player
		*Velocity
		*HP
	}]
}

func (s *BulletCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	assets := s.Assets.Get()
	playerId, hasPlayer := s.Player.Get().Id()

	var (
		exploded  bool
		deflected bool
		heal      uint32
	)

	for bullet := range s.Bullets.Values() {
		if !cfg.inPlayArea(bullet.Position.Vec2) {
			frame.Commands.Delete(bullet.EntityId)
			continue
		}

		isDeflected := bullet.Deflected != nil
		for target := range s.Targets.Values() {
			isPlayer := hasPlayer && target.EntityId == playerId
			// The alive check only guards the enemy clause. Player-damaging
			// bullets still collide with a player already at zero HP.
			if !((bullet.DamagesWho == FactionPlayer && isPlayer) ||
				(bullet.DamagesWho == FactionEnemy && !isPlayer && target.HP.Remaining > 0)) {
				continue
			}

			bulletRect := bullet.Hitbox.Rect(bullet.Position.Vec2)
			targetRect := target.Hitbox.Rect(target.Position.Vec2)
			if !bulletRect.Overlaps(targetRect) {
				continue
			}

			if isPlayer {
				if player := s.Players.Get(playerId); player != nil && player.Player.DeflectorTimer > 0 {
					s.deflect(cfg, bullet, bulletRect.Center().Sub(targetRect.Center()), player.Velocity.Vec2)
					if !isDeflected {
						frame.Commands.AddComponent(bullet.EntityId, Deflected{})
						isDeflected = true
					}
					player.Player.DeflectorTimer = 2 * player.Player.DeflectorFrames
					deflected = true
					continue
				}
			}

			frame.Commands.Delete(bullet.EntityId)
			spawnExplosion(frame, cfg, assets, bullet.Position.Vec2)
			exploded = true
			if isDeflected {
				heal += (bullet.Damage / 3) * 2
			}
			target.HP.damage(bullet.Damage)
			if isPlayer {
				s.HPText.Get().NeedsRedraw = true
			}
		}
	}

	sounds := s.Sounds.Get()
	if exploded {
		queueSound(cfg, assets, sounds, SoundBoom)
	}
	if deflected {
		queueSound(cfg, assets, sounds, SoundDeflect)
	}
	if heal > 0 && hasPlayer {
		if player := s.Players.Get(playerId); player != nil && player.HP.Remaining > 0 {
			player.HP.heal(heal)
			s.HPText.Get().NeedsRedraw = true
		}
	}
}

// deflect reflects the bullet across normal, adds the player's momentum and
// turns the bullet against enemies.
func (s *BulletCollisionSystem) deflect(cfg *Config, bullet collidingBullet, normal Vec2, playerVel Vec2) {
	n := normal.Normalize()
	if n == (Vec2{}) {
		n = Vec2{0, -1}
	}

	v := bullet.Velocity.Reflect(n).Add(playerVel)
	if v.X > -cfg.DeflectMinSpeed && v.X < cfg.DeflectMinSpeed {
		v.X = 0
	}
	if speed := v.Len(); speed == 0 {
		v = Vec2{0, -cfg.DeflectMinSpeed}
	} else if speed < cfg.DeflectMinSpeed {
		v = v.Scale(cfg.DeflectMinSpeed / speed)
	}
	bullet.Velocity.Vec2 = v

	if t, ok := bullet.Ty.(TrackingBullet); ok && t.Remaining > cfg.DeflectFuse {
		bullet.Ty = TrackingBullet{Remaining: cfg.DeflectFuse}
		return
	}
	bullet.DamagesWho = FactionEnemy
	bullet.Damage *= 3
}
