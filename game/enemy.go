package game

import (
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

// EnemyFireSystem counts down every enemy's reload timer and fires at the
// player when it expires.
type EnemyFireSystem struct {
	Config ecs.Singleton[Config]
	Player ecs.Singleton[PlayerEntity]

	Enemies ecs.Query[struct {
		*Position
		*Enemy
	}]
	Targets ecs.Query[struct {
		*Position
		*Player
	}]
}

func (s *EnemyFireSystem) Execute(frame *ecs.UpdateFrame) {
	id, ok := s.Player.Get().Id()
	if !ok {
		return
	}
	target := s.Targets.Get(id)
	if target == nil {
		return
	}

	cfg := s.Config.Get()
	for enemy := range s.Enemies.Values() {
		if enemy.Enemy.ReloadTimer > 0 {
			enemy.Enemy.ReloadTimer--
			continue
		}
		enemy.Enemy.ReloadTimer = enemy.Enemy.ReloadSpeed

		muzzle := cfg.EnemyHitbox.Rect(enemy.Position.Vec2).Center()
		frame.Commands.Spawn(NewEnemyBullet(cfg, enemy.Enemy, muzzle, target.Position.Vec2)...)
	}
}

// EnemyWaveSystem spawns enemies above the screen at a fixed interval and
// removes the ones that drifted off the bottom.
type EnemyWaveSystem struct {
	Config ecs.Singleton[Config]
	Wave   ecs.Singleton[WaveState]

	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Enemy
	}]
}

// WaveState holds the enemy spawner's countdown and random source.
type WaveState struct {
	Countdown uint32
	Spawned   uint64
	Rng       *rand.Rand
}

func (s *EnemyWaveSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()

	for enemy := range s.Enemies.Values() {
		if enemy.Position.Y > cfg.ScreenHeight {
			frame.Commands.Delete(enemy.EntityId)
		}
	}

	if cfg.EnemySpawnInterval == 0 {
		return
	}

	wave := s.Wave.Get()
	if wave.Countdown > 0 {
		wave.Countdown--
		return
	}
	wave.Countdown = cfg.EnemySpawnInterval

	kind := EnemyKind(wave.Rng.IntN(3))
	x := wave.Rng.Float32() * (cfg.ScreenWidth - cfg.EnemyHitbox.W)
	frame.Commands.Spawn(NewEnemy(cfg, kind, Vec2{x, -cfg.EnemyHitbox.H})...)
	wave.Spawned++
}
