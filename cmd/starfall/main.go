package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/starfall/game"
)

func main() {
	cfg := game.DefaultConfig()

	seed := flag.Uint64("seed", cfg.Seed, "Random seed for stars and enemy waves.")
	spawnInterval := flag.Uint("spawn-interval", uint(cfg.EnemySpawnInterval), "Frames between enemy spawns (0 disables).")
	hp := flag.Uint("hp", uint(cfg.PlayerHP), "Player hit points.")
	stars := flag.Int("stars", cfg.Stars.NumStars, "Number of background stars.")
	mute := flag.Bool("mute", false, "Disable sound effects.")
	debug := flag.Bool("debug", false, "Show the ECS inspector overlay.")
	flag.Parse()

	cfg.Seed = *seed
	cfg.EnemySpawnInterval = uint32(*spawnInterval)
	cfg.PlayerHP = uint32(*hp)
	cfg.Stars.NumStars = *stars

	ebiten.SetWindowSize(int(cfg.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle("Starfall")

	assets := &game.Assets{
		Animations: map[string]game.AnimatedSprite{
			game.AnimExplosion: explosionAnimation(),
		},
	}
	if !*mute {
		sounds, err := newSoundBank()
		if err != nil {
			log.Printf("warning: sound disabled: %v", err)
		} else {
			assets.Sounds = sounds
		}
	}

	g, err := newGame(cfg, assets)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if *debug {
		g.debug = newDebugOverlay(cfg, g.sim)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
