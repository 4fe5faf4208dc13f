package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/plus3/starfall/ecs"
)

// FrameTime is the nominal duration of one simulation step in seconds.
const FrameTime = 1.0 / 60

// Simulation owns the entity store and the system pipeline of one game.
type Simulation struct {
	cfg       *Config
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	input  *ecs.Singleton[InputState]
	sounds *ecs.Singleton[QueuedSounds]
	dead   *ecs.Singleton[Dead]
	hpText *ecs.Singleton[HPText]
	player *ecs.Singleton[PlayerEntity]
}

// New builds a simulation with the player and the star field in place.
func New(cfg Config, assets *Assets) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if assets == nil {
		assets = &Assets{}
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	storage.AddSingleton(cfg)
	storage.AddSingleton(*assets)
	storage.AddSingleton(WaveState{Rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))})

	sim := &Simulation{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton[InputState](storage),
		sounds:    ecs.NewSingleton[QueuedSounds](storage),
		dead:      ecs.NewSingleton[Dead](storage),
		hpText:    ecs.NewSingleton[HPText](storage, HPText{NeedsRedraw: true}),
		player:    ecs.NewSingleton[PlayerEntity](storage),
	}
	storage.ReadSingleton(&sim.cfg)

	playerId := storage.Spawn(NewPlayer(sim.cfg)...)
	sim.player.Set(PlayerEntity{Ref: storage.CreateEntityRef(playerId)})

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	for range cfg.Stars.NumStars {
		storage.Spawn(cfg.Stars.NewStar(rng, cfg.ScreenWidth)...)
	}

	sim.scheduler.Register(&PlayerControlSystem{})
	sim.scheduler.Register(&EnemyWaveSystem{})
	sim.scheduler.Register(&EnemyFireSystem{})
	sim.scheduler.Register(&MovementSystem{})
	sim.scheduler.Register(&IFrameSystem{})
	sim.scheduler.Register(&BulletCollisionSystem{})
	sim.scheduler.Register(&BulletTrackingSystem{Faction: FactionPlayer, Speed: cfg.TrackingSpeed})
	sim.scheduler.Register(&BulletTrackingSystem{Faction: FactionEnemy, Speed: cfg.EnemyTrackingSpeed})
	sim.scheduler.Register(&BounceBulletSystem{})
	sim.scheduler.Register(&DeathSystem{})
	sim.scheduler.Register(&AnimationSystem{})

	return sim, nil
}

// Step runs one frame with the given input. Commands that targeted entities
// already gone are logged and skipped; any other failure is returned.
func (s *Simulation) Step(input Input) error {
	s.input.Get().Input = input

	err := s.scheduler.Once(FrameTime)
	if err == nil {
		return nil
	}

	var unexpected []error
	for _, e := range flatten(err) {
		if errors.Is(e, ecs.ErrEntityNotFound) {
			s.cfg.warnf("frame %d: %v", s.scheduler.Tick(), e)
			continue
		}
		unexpected = append(unexpected, e)
	}
	return errors.Join(unexpected...)
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// DrainSounds returns the cues queued since the last call, oldest first.
func (s *Simulation) DrainSounds() []Sound {
	queue := s.sounds.Get()
	sounds := queue.Sounds
	queue.Sounds = nil
	return sounds
}

// Dead reports whether the player has died.
func (s *Simulation) Dead() bool {
	return s.dead.Get().Value
}

// TakeHPRedraw reports whether the HP display is stale and clears the flag.
func (s *Simulation) TakeHPRedraw() bool {
	text := s.hpText.Get()
	redraw := text.NeedsRedraw
	text.NeedsRedraw = false
	return redraw
}

// PlayerHP returns the player's remaining hit points, or false once the
// player entity is gone.
func (s *Simulation) PlayerHP() (uint32, bool) {
	id, ok := s.PlayerId()
	if !ok {
		return 0, false
	}
	hp := ecs.ReadComponent[HP](s.storage, id)
	if hp == nil {
		return 0, false
	}
	return hp.Remaining, true
}

// PlayerId returns the player's current entity id.
func (s *Simulation) PlayerId() (ecs.EntityId, bool) {
	return s.player.Get().Id()
}

// SpawnEnemy places an enemy immediately.
func (s *Simulation) SpawnEnemy(kind EnemyKind, pos Vec2) ecs.EntityId {
	return s.storage.Spawn(NewEnemy(s.cfg, kind, pos)...)
}

// Config returns the live configuration. Changes apply from the next step.
func (s *Simulation) Config() *Config {
	return s.cfg
}

func (s *Simulation) Storage() *ecs.Storage {
	return s.storage
}

func (s *Simulation) Scheduler() *ecs.Scheduler {
	return s.scheduler
}
