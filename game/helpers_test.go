package game_test

import (
	"bytes"
	"image"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

type fakeSound string

func (fakeSound) Play() {}

func testConfig(logs *bytes.Buffer) game.Config {
	cfg := game.DefaultConfig()
	cfg.EnemySpawnInterval = 0
	cfg.Stars.NumStars = 0
	cfg.Workers = 1
	cfg.Logger = log.New(logs, "", 0)
	return cfg
}

func testAssets() *game.Assets {
	frames := make([]image.Image, 4)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return &game.Assets{
		Animations: map[string]game.AnimatedSprite{
			game.AnimExplosion: {Frames: frames, NumFrames: 4},
		},
		Sounds: map[string]game.Sound{
			game.SoundBoom:    fakeSound(game.SoundBoom),
			game.SoundDeflect: fakeSound(game.SoundDeflect),
			game.SoundDead:    fakeSound(game.SoundDead),
			game.SoundShoot:   fakeSound(game.SoundShoot),
		},
	}
}

// newSim returns a simulation with only the player in it. The HP redraw flag
// raised at start-up is already consumed.
func newSim(t *testing.T) (*game.Simulation, *bytes.Buffer) {
	t.Helper()
	return newSimWith(t, testAssets(), nil)
}

func newSimWith(t *testing.T, assets *game.Assets, tweak func(*game.Config)) (*game.Simulation, *bytes.Buffer) {
	t.Helper()
	logs := &bytes.Buffer{}
	cfg := testConfig(logs)
	if tweak != nil {
		tweak(&cfg)
	}
	sim, err := game.New(cfg, assets)
	require.NoError(t, err)
	sim.TakeHPRedraw()
	return sim, logs
}

func playerId(t *testing.T, sim *game.Simulation) ecs.EntityId {
	t.Helper()
	id, ok := sim.PlayerId()
	require.True(t, ok, "player should be alive")
	return id
}

func playerComponent(t *testing.T, sim *game.Simulation) *game.Player {
	t.Helper()
	p := ecs.ReadComponent[game.Player](sim.Storage(), playerId(t, sim))
	require.NotNil(t, p)
	return p
}

// overPlayer returns a position whose default bullet hitbox overlaps the
// player's hitbox.
func overPlayer(t *testing.T, sim *game.Simulation) game.Vec2 {
	t.Helper()
	pos := ecs.ReadComponent[game.Position](sim.Storage(), playerId(t, sim))
	require.NotNil(t, pos)
	return pos.Add(game.Vec2{X: 15, Y: 15})
}

func spawnBullet(sim *game.Simulation, pos, vel game.Vec2, bullet game.Bullet, extra ...any) ecs.EntityId {
	components := []any{
		game.Position{Vec2: pos},
		game.Velocity{Vec2: vel},
		game.Hitbox{W: 5, H: 10},
		bullet,
	}
	return sim.Storage().Spawn(append(components, extra...)...)
}

func count[T any](storage *ecs.Storage) int {
	n := 0
	for range ecs.NewView[struct{ C *T }](storage).Values() {
		n++
	}
	return n
}

func sounds(names ...string) []game.Sound {
	if len(names) == 0 {
		return nil
	}
	out := make([]game.Sound, len(names))
	for i, name := range names {
		out[i] = fakeSound(name)
	}
	return out
}
