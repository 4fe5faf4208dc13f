package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

type nopSound struct{}

func (nopSound) Play() {}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	enemyCount := flag.Int("enemies", 2000, "The initial number of enemies to create.")
	bulletCount := flag.Int("bullets", 20000, "The initial number of bullets to create.")
	starCount := flag.Int("stars", 5000, "The number of background stars.")
	spawnInterval := flag.Uint("spawn-interval", 2, "Frames between enemy wave spawns (0 disables).")
	workers := flag.Int("workers", 0, "Workers for data-parallel systems (0 = GOMAXPROCS).")
	seed := flag.Uint64("seed", 1, "Random seed.")
	compactEvery := flag.Int64("compact-every", 600, "Frames between storage compactions (0 disables).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting starfall stress test...")

	cfg := game.DefaultConfig()
	cfg.PlayerHP = 1 << 30
	cfg.Stars.NumStars = *starCount
	cfg.EnemySpawnInterval = uint32(*spawnInterval)
	cfg.Workers = *workers
	cfg.Seed = *seed

	sim, err := game.New(cfg, stressAssets())
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed+7))

	log.Printf("Populating storage with %d enemies and %d bullets...\n", *enemyCount, *bulletCount)
	for range *enemyCount {
		kind := game.EnemyKind(rng.IntN(3))
		sim.SpawnEnemy(kind, game.Vec2{X: rng.Float32() * cfg.ScreenWidth, Y: rng.Float32() * cfg.ScreenHeight / 2})
	}
	for range *bulletCount {
		spawnRandomBullet(sim.Storage(), &cfg, rng)
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Enemies:        *enemyCount,
		Bullets:        *bulletCount,
		Stars:          *starCount,
		Workers:        *workers,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			input := game.Input{
				Move:    game.Vec2{X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1},
				Fire:    true,
				Deflect: rng.IntN(20) == 0,
			}

			updateStart := time.Now()
			if err := sim.Step(input); err != nil {
				log.Printf("step %d: %v", totalUpdates, err)
			}
			updateDuration := time.Since(updateStart)

			report.SoundCues += len(sim.DrainSounds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			if *compactEvery > 0 && totalUpdates%*compactEvery == 0 {
				sim.Storage().Compact()
				report.Compactions++
			}

			if sim.Dead() {
				log.Println("Player died, stopping early.")
				break Loop
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Systems = sim.Scheduler().GetStats()
	report.Storage = sim.Storage().CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func stressAssets() *game.Assets {
	return &game.Assets{
		Animations: map[string]game.AnimatedSprite{
			game.AnimExplosion: {NumFrames: 8},
		},
		Sounds: map[string]game.Sound{
			game.SoundBoom:    nopSound{},
			game.SoundDeflect: nopSound{},
			game.SoundDead:    nopSound{},
			game.SoundShoot:   nopSound{},
		},
	}
}

// spawnRandomBullet places a bullet of a random type and faction somewhere on screen.
func spawnRandomBullet(storage *ecs.Storage, cfg *game.Config, rng *rand.Rand) {
	var ty game.BulletType
	switch rng.IntN(3) {
	case 0:
		ty = game.BasicBullet{}
	case 1:
		ty = game.BouncingBullet{Remaining: cfg.BounceCount}
	default:
		ty = game.TrackingBullet{Remaining: uint32(rng.IntN(int(cfg.TrackingFrames) + 1))}
	}

	faction := game.FactionPlayer
	if rng.IntN(2) == 0 {
		faction = game.FactionEnemy
	}

	storage.Spawn(
		game.Position{Vec2: game.Vec2{X: rng.Float32() * cfg.ScreenWidth, Y: rng.Float32() * cfg.ScreenHeight}},
		game.Velocity{Vec2: game.Vec2{X: rng.Float32()*6 - 3, Y: rng.Float32()*6 - 3}},
		cfg.EnemyBulletHitbox,
		game.Bullet{Damage: 1, Ty: ty, DamagesWho: faction},
	)
}
