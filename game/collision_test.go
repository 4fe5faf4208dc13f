package game_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

func TestEnemyBulletHitsPlayer(t *testing.T) {
	sim, _ := newSim(t)

	bullet := spawnBullet(sim, overPlayer(t, sim), game.Vec2{}, game.Bullet{
		Damage:     3,
		Ty:         game.BasicBullet{},
		DamagesWho: game.FactionPlayer,
	})

	require.NoError(t, sim.Step(game.Input{}))

	hp, ok := sim.PlayerHP()
	require.True(t, ok)
	assert.Equal(t, uint32(7), hp)
	assert.False(t, sim.Storage().Alive(bullet))
	assert.Equal(t, sounds(game.SoundBoom), sim.DrainSounds())
	assert.True(t, sim.TakeHPRedraw())
	assert.Equal(t, 1, count[game.AnimatedSprite](sim.Storage()))
}

func TestExplosionSpawnsAtOffset(t *testing.T) {
	sim, _ := newSim(t)
	pos := overPlayer(t, sim)

	spawnBullet(sim, pos, game.Vec2{}, game.Bullet{Damage: 1, Ty: game.BasicBullet{}, DamagesWho: game.FactionPlayer})
	require.NoError(t, sim.Step(game.Input{}))

	var explosions []game.Vec2
	for e := range ecs.NewView[struct {
		*game.Position
		*game.AnimatedSprite
	}](sim.Storage()).Values() {
		explosions = append(explosions, e.Position.Vec2)
		assert.True(t, e.AnimatedSprite.Temporary)
		assert.Equal(t, uint32(0), e.AnimatedSprite.CurrentFrame, "the explosion is spawned after the animation pass")
	}
	assert.Equal(t, []game.Vec2{pos.Add(game.Vec2{X: -20, Y: -20})}, explosions)
}

func TestDeflectorReflectsBullet(t *testing.T) {
	sim, _ := newSim(t)
	playerComponent(t, sim).DeflectorTimer = 5

	pos := overPlayer(t, sim).Sub(game.Vec2{Y: 2})
	bullet := spawnBullet(sim, pos, game.Vec2{Y: 2}, game.Bullet{
		Damage:     2,
		Ty:         game.BasicBullet{},
		DamagesWho: game.FactionPlayer,
	})
	ref := sim.Storage().CreateEntityRef(bullet)

	require.NoError(t, sim.Step(game.Input{}))

	id, ok := sim.Storage().ResolveEntityRef(ref)
	require.True(t, ok, "deflected bullet must survive")

	b := ecs.ReadComponent[game.Bullet](sim.Storage(), id)
	require.NotNil(t, b)
	assert.Equal(t, game.FactionEnemy, b.DamagesWho)
	assert.Equal(t, uint32(6), b.Damage)
	assert.True(t, sim.Storage().HasComponent(id, reflect.TypeFor[game.Deflected]()))

	vel := ecs.ReadComponent[game.Velocity](sim.Storage(), id)
	require.NotNil(t, vel)
	assert.Equal(t, float32(0), vel.X, "slow horizontal drift is dropped")
	assert.InDelta(t, -8, vel.Y, 1e-4)

	assert.Equal(t, uint32(24), playerComponent(t, sim).DeflectorTimer)
	hp, _ := sim.PlayerHP()
	assert.Equal(t, uint32(10), hp)
	assert.Equal(t, sounds(game.SoundDeflect), sim.DrainSounds())
	assert.False(t, sim.TakeHPRedraw())
}

func TestDeflectShortensTrackingFuse(t *testing.T) {
	sim, _ := newSim(t)
	playerComponent(t, sim).DeflectorTimer = 5

	bullet := spawnBullet(sim, overPlayer(t, sim), game.Vec2{}, game.Bullet{
		Damage:     2,
		Ty:         game.TrackingBullet{Remaining: 100},
		DamagesWho: game.FactionPlayer,
	})
	ref := sim.Storage().CreateEntityRef(bullet)

	require.NoError(t, sim.Step(game.Input{}))

	id, ok := sim.Storage().ResolveEntityRef(ref)
	require.True(t, ok)
	b := ecs.ReadComponent[game.Bullet](sim.Storage(), id)
	require.NotNil(t, b)
	// The fuse is cut to 10 and the player tracking pass then ticks it once.
	assert.Equal(t, game.TrackingBullet{Remaining: 9}, b.Ty)
	assert.Equal(t, game.FactionPlayer, b.DamagesWho)
	assert.Equal(t, uint32(2), b.Damage)
	assert.True(t, sim.Storage().HasComponent(id, reflect.TypeFor[game.Deflected]()))
}

func TestDeflectedKillHealsPlayer(t *testing.T) {
	sim, _ := newSim(t)
	enemy := sim.SpawnEnemy(game.BasicEnemy, game.Vec2{X: 100, Y: 100})

	spawnBullet(sim, game.Vec2{X: 110, Y: 110}, game.Vec2{}, game.Bullet{
		Damage:     6,
		Ty:         game.BasicBullet{},
		DamagesWho: game.FactionEnemy,
	}, game.Deflected{})

	require.NoError(t, sim.Step(game.Input{}))

	hp, ok := sim.PlayerHP()
	require.True(t, ok)
	assert.Equal(t, uint32(14), hp)
	assert.True(t, sim.TakeHPRedraw())
	assert.False(t, sim.Storage().Alive(enemy), "enemy at zero HP is removed the same frame")
	assert.Equal(t, sounds(game.SoundBoom), sim.DrainSounds())
}

func TestUndeflectedKillDoesNotHeal(t *testing.T) {
	sim, _ := newSim(t)
	sim.SpawnEnemy(game.BasicEnemy, game.Vec2{X: 100, Y: 100})

	spawnBullet(sim, game.Vec2{X: 110, Y: 110}, game.Vec2{}, game.Bullet{
		Damage:     6,
		Ty:         game.BasicBullet{},
		DamagesWho: game.FactionEnemy,
	})

	require.NoError(t, sim.Step(game.Input{}))

	hp, _ := sim.PlayerHP()
	assert.Equal(t, uint32(10), hp)
	assert.False(t, sim.TakeHPRedraw())
}

func TestBulletNeverHurtsOwnFaction(t *testing.T) {
	sim, _ := newSim(t)
	enemy := sim.SpawnEnemy(game.BasicEnemy, game.Vec2{X: 100, Y: 100})

	atPlayer := spawnBullet(sim, overPlayer(t, sim), game.Vec2{}, game.Bullet{
		Damage: 5, Ty: game.BasicBullet{}, DamagesWho: game.FactionEnemy,
	})
	atEnemy := spawnBullet(sim, game.Vec2{X: 110, Y: 110}, game.Vec2{}, game.Bullet{
		Damage: 5, Ty: game.BasicBullet{}, DamagesWho: game.FactionPlayer,
	})

	require.NoError(t, sim.Step(game.Input{}))

	hp, _ := sim.PlayerHP()
	assert.Equal(t, uint32(10), hp)
	enemyHP := ecs.ReadComponent[game.HP](sim.Storage(), enemy)
	require.NotNil(t, enemyHP)
	assert.Equal(t, uint32(1), enemyHP.Remaining)
	assert.True(t, sim.Storage().Alive(atPlayer))
	assert.True(t, sim.Storage().Alive(atEnemy))
	assert.Empty(t, sim.DrainSounds())
}

func TestDamageSaturatesAndKillsPlayer(t *testing.T) {
	sim, _ := newSim(t)

	spawnBullet(sim, overPlayer(t, sim), game.Vec2{}, game.Bullet{
		Damage: 50, Ty: game.BasicBullet{}, DamagesWho: game.FactionPlayer,
	})

	require.NoError(t, sim.Step(game.Input{}))

	assert.True(t, sim.Dead())
	_, ok := sim.PlayerHP()
	assert.False(t, ok, "dead player is removed")
	assert.Equal(t, sounds(game.SoundBoom, game.SoundDead), sim.DrainSounds())
}

func TestBulletHitsEveryOverlappingTarget(t *testing.T) {
	sim, _ := newSim(t)
	first := sim.SpawnEnemy(game.GunnerEnemy, game.Vec2{X: 100, Y: 100})
	second := sim.SpawnEnemy(game.GunnerEnemy, game.Vec2{X: 100, Y: 100})

	bullet := spawnBullet(sim, game.Vec2{X: 110, Y: 110}, game.Vec2{}, game.Bullet{
		Damage: 1, Ty: game.BasicBullet{}, DamagesWho: game.FactionEnemy,
	})
	require.NoError(t, sim.Step(game.Input{}))

	assert.False(t, sim.Storage().Alive(bullet))
	assert.Equal(t, uint32(2), ecs.ReadComponent[game.HP](sim.Storage(), first).Remaining)
	assert.Equal(t, uint32(2), ecs.ReadComponent[game.HP](sim.Storage(), second).Remaining)
	assert.Equal(t, 2, count[game.AnimatedSprite](sim.Storage()), "one explosion per hit")
	assert.Equal(t, sounds(game.SoundBoom), sim.DrainSounds())
}

func TestHealSaturates(t *testing.T) {
	sim, _ := newSim(t)
	ecs.ReadComponent[game.HP](sim.Storage(), playerId(t, sim)).Remaining = math.MaxUint32 - 1
	sim.SpawnEnemy(game.BasicEnemy, game.Vec2{X: 100, Y: 100})

	spawnBullet(sim, game.Vec2{X: 110, Y: 110}, game.Vec2{}, game.Bullet{
		Damage: 6, Ty: game.BasicBullet{}, DamagesWho: game.FactionEnemy,
	}, game.Deflected{})
	require.NoError(t, sim.Step(game.Input{}))

	hp, ok := sim.PlayerHP()
	require.True(t, ok)
	assert.Equal(t, uint32(math.MaxUint32), hp)
}

func TestHealDoesNotRevivePlayer(t *testing.T) {
	sim, _ := newSim(t)
	ecs.ReadComponent[game.HP](sim.Storage(), playerId(t, sim)).Remaining = 1
	sim.SpawnEnemy(game.BasicEnemy, game.Vec2{X: 100, Y: 100})

	spawnBullet(sim, game.Vec2{X: 110, Y: 110}, game.Vec2{}, game.Bullet{
		Damage: 6, Ty: game.BasicBullet{}, DamagesWho: game.FactionEnemy,
	}, game.Deflected{})
	spawnBullet(sim, overPlayer(t, sim), game.Vec2{}, game.Bullet{
		Damage: 1, Ty: game.BasicBullet{}, DamagesWho: game.FactionPlayer,
	})
	require.NoError(t, sim.Step(game.Input{}))

	assert.True(t, sim.Dead())
	_, ok := sim.PlayerHP()
	assert.False(t, ok)
}

func TestOffscreenBulletsAreCulled(t *testing.T) {
	sim, _ := newSim(t)
	w, h := sim.Config().ScreenWidth, sim.Config().ScreenHeight

	bullet := game.Bullet{Damage: 1, Ty: game.BasicBullet{}, DamagesWho: game.FactionEnemy}
	culled := []ecs.EntityId{
		spawnBullet(sim, game.Vec2{X: -11, Y: 100}, game.Vec2{}, bullet),
		spawnBullet(sim, game.Vec2{X: w + 10, Y: 100}, game.Vec2{}, bullet),
		spawnBullet(sim, game.Vec2{X: 100, Y: -11}, game.Vec2{}, bullet),
		spawnBullet(sim, game.Vec2{X: 100, Y: h}, game.Vec2{}, bullet),
	}
	kept := []ecs.EntityId{
		spawnBullet(sim, game.Vec2{X: -10, Y: 100}, game.Vec2{}, bullet),
		spawnBullet(sim, game.Vec2{X: w + 9, Y: 100}, game.Vec2{}, bullet),
		spawnBullet(sim, game.Vec2{X: 100, Y: -10}, game.Vec2{}, bullet),
		spawnBullet(sim, game.Vec2{X: 100, Y: h - 1}, game.Vec2{}, bullet),
	}

	require.NoError(t, sim.Step(game.Input{}))

	for _, id := range culled {
		assert.False(t, sim.Storage().Alive(id))
	}
	for _, id := range kept {
		assert.True(t, sim.Storage().Alive(id))
	}
	assert.Empty(t, sim.DrainSounds())
}

func TestMissingAssetsAreLogged(t *testing.T) {
	sim, logs := newSimWith(t, &game.Assets{}, nil)

	bullet := spawnBullet(sim, overPlayer(t, sim), game.Vec2{}, game.Bullet{
		Damage: 3, Ty: game.BasicBullet{}, DamagesWho: game.FactionPlayer,
	})

	require.NoError(t, sim.Step(game.Input{}))

	hp, _ := sim.PlayerHP()
	assert.Equal(t, uint32(7), hp)
	assert.False(t, sim.Storage().Alive(bullet))
	assert.Empty(t, sim.DrainSounds())
	assert.Zero(t, count[game.AnimatedSprite](sim.Storage()))
	assert.Contains(t, logs.String(), `warning: spawning explosion: animation "explosion": asset missing`)
	assert.Contains(t, logs.String(), `warning: queueing sound: sound "boom": asset missing`)
}
