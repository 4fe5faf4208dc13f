package game

import (
	"image/color"
	"math/rand/v2"
)

// NewPlayerBullet builds the components of a bullet fired by the player at pos.
// Upward player momentum is carried into the bullet.
func NewPlayerBullet(cfg *Config, ty BulletType, pos Vec2, playerVel Vec2) []any {
	vel := Vec2{0, -cfg.PlayerBulletSpeed + min(playerVel.Y, 0)}
	switch t := ty.(type) {
	case BouncingBullet:
		vel.X = playerVel.X
		if t.Remaining == 0 {
			ty = BouncingBullet{Remaining: cfg.BounceCount}
		}
	case TrackingBullet:
		if t.Remaining == 0 {
			ty = TrackingBullet{Remaining: cfg.TrackingFrames}
		}
	case nil:
		ty = BasicBullet{}
	}
	return []any{
		Position{Vec2{pos.X, pos.Y - 16}},
		Velocity{vel},
		cfg.PlayerBulletHitbox,
		Bullet{Damage: cfg.PlayerBulletDamage, Ty: ty, DamagesWho: FactionEnemy},
	}
}

// NewEnemyBullet builds a bullet fired by an enemy at pos, aimed at target.
func NewEnemyBullet(cfg *Config, enemy *Enemy, pos, target Vec2) []any {
	dir := target.Sub(pos).Normalize()
	if dir == (Vec2{}) {
		dir = Vec2{0, 1}
	}

	var vel Vec2
	ty := enemy.BulletType
	switch t := ty.(type) {
	case BouncingBullet:
		vel = Vec2{3, 4}
		if dir.X < 0 {
			vel.X = -3
		}
		if t.Remaining == 0 {
			ty = BouncingBullet{Remaining: cfg.BounceCount}
		}
	case TrackingBullet:
		vel = dir.Scale(cfg.EnemyBulletSpeed)
		if t.Remaining == 0 {
			ty = TrackingBullet{Remaining: cfg.TrackingFrames}
		}
	default:
		vel = dir.Scale(cfg.EnemyBulletSpeed)
		ty = BasicBullet{}
	}

	return []any{
		Position{pos},
		Velocity{vel},
		cfg.EnemyBulletHitbox,
		Bullet{Damage: enemy.Damage, Ty: ty, DamagesWho: FactionPlayer},
	}
}

// NewPlayer builds the player's components, placed near the bottom centre.
func NewPlayer(cfg *Config) []any {
	return []any{
		Position{Vec2{cfg.ScreenWidth/2 - 25, cfg.ScreenHeight * 0.75}},
		Velocity{},
		HP{Remaining: cfg.PlayerHP},
		cfg.PlayerHitbox,
		Player{
			BulletType:      BasicBullet{},
			ReloadSpeed:     cfg.ReloadSpeed,
			ReloadTimer:     cfg.ReloadSpeed,
			DeflectorFrames: cfg.DeflectorFrames,
		},
	}
}

// NewEnemy builds the components of an enemy of the given kind at pos.
func NewEnemy(cfg *Config, kind EnemyKind, pos Vec2) []any {
	enemy := Enemy{Kind: kind, Damage: 1, ReloadSpeed: 60}
	hp := uint32(1)
	switch kind {
	case BasicEnemy:
		enemy.BulletType = BasicBullet{}
	case GunnerEnemy:
		enemy.BulletType = BouncingBullet{Remaining: cfg.BounceCount}
		enemy.ReloadSpeed = 45
		hp = 3
	case HunterEnemy:
		enemy.BulletType = TrackingBullet{Remaining: cfg.TrackingFrames}
		enemy.ReloadSpeed = 120
		enemy.Damage = 2
		hp = 5
	}
	enemy.ReloadTimer = enemy.ReloadSpeed

	return []any{
		Position{pos},
		Velocity{Vec2{0, cfg.EnemySpeed}},
		HP{Remaining: hp},
		cfg.EnemyHitbox,
		enemy,
	}
}

// StarInfo describes the background star field.
type StarInfo struct {
	NumStars     int
	Size         float32
	SizeVariance float32
	Vel          float32
	VelVariance  float32
}

// NewStar builds one star somewhere above the visible area, so the field
// scrolls in from the top.
func (s StarInfo) NewStar(rng *rand.Rand, screenWidth float32) []any {
	x := rng.Float32() * screenWidth
	y := -rng.Float32() * screenWidth
	vel := s.Vel + (rng.Float32()*2-1)*s.VelVariance
	size := s.Size + (rng.Float32()*2-1)*s.SizeVariance

	return []any{
		Position{Vec2{x, y}},
		Velocity{Vec2{0, vel}},
		ColorRect{Color: color.RGBA{0xff, 0xff, 0xff, 0xff}, W: size, H: size},
		Star{},
	}
}
