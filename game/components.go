package game

import (
	"image"
	"image/color"
	"math"

	"github.com/plus3/starfall/ecs"
)

type Position struct {
	Vec2
}

type Velocity struct {
	Vec2
}

// HP tracks remaining hit points and the frames of hit invincibility left.
type HP struct {
	Remaining uint32
	IFrames   uint32
}

// damage subtracts amount, saturating at zero.
func (hp *HP) damage(amount uint32) {
	hp.Remaining -= min(amount, hp.Remaining)
}

// heal adds amount, saturating at the largest representable value.
func (hp *HP) heal(amount uint32) {
	hp.Remaining += min(amount, math.MaxUint32-hp.Remaining)
}

// Hitbox is a collision rectangle relative to the owner's Position.
type Hitbox struct {
	DX, DY float32
	W, H   float32
}

// Rect returns the hitbox in screen coordinates for an owner at pos.
func (h Hitbox) Rect(pos Vec2) Rect {
	return Rect{X: pos.X + h.DX, Y: pos.Y + h.DY, W: h.W, H: h.H}
}

// Faction selects who a bullet is allowed to damage.
type Faction uint8

const (
	FactionPlayer Faction = iota + 1
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "none"
	}
}

// BulletType is one of BasicBullet, BouncingBullet or TrackingBullet.
type BulletType interface {
	isBulletType()
}

type BasicBullet struct{}

// BouncingBullet reflects off the left and right screen edges Remaining more times.
type BouncingBullet struct {
	Remaining uint32
}

// TrackingBullet homes in on its target and explodes after Remaining frames.
type TrackingBullet struct {
	Remaining uint32
}

func (BasicBullet) isBulletType()    {}
func (BouncingBullet) isBulletType() {}
func (TrackingBullet) isBulletType() {}

type Bullet struct {
	Damage     uint32
	Ty         BulletType
	DamagesWho Faction
}

// Deflected tags a bullet the player has reflected.
type Deflected struct{}

type Player struct {
	BulletType      BulletType
	ReloadSpeed     uint32
	ReloadTimer     uint32
	DeflectorTimer  uint32
	DeflectorFrames uint32
}

type EnemyKind uint8

const (
	BasicEnemy EnemyKind = iota
	GunnerEnemy
	HunterEnemy
)

type Enemy struct {
	Kind        EnemyKind
	BulletType  BulletType
	Damage      uint32
	ReloadSpeed uint32
	ReloadTimer uint32
}

// AnimatedSprite cycles through Frames one per tick. Temporary sprites delete
// their entity after one full cycle; the rest loop.
type AnimatedSprite struct {
	Frames       []image.Image
	CurrentFrame uint32
	NumFrames    uint32
	Temporary    bool
}

// Frame returns the image to draw this tick, or nil when there are no frames.
func (a *AnimatedSprite) Frame() image.Image {
	if int(a.CurrentFrame) >= len(a.Frames) {
		return nil
	}
	return a.Frames[a.CurrentFrame]
}

type Sprite struct {
	Image image.Image
}

type ColorRect struct {
	Color color.RGBA
	W, H  float32
}

// Star marks background stars.
type Star struct{}

// RegisterComponents registers every component type the simulation uses.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[HP](registry)
	ecs.RegisterComponent[Hitbox](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Deflected](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[AnimatedSprite](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[ColorRect](registry)
	ecs.RegisterComponent[Star](registry)
}
