package game

import (
	"errors"
	"fmt"
	"log"
)

// Config holds the tunables of the simulation. DefaultConfig matches the
// original arcade feel; commands override fields from flags.
type Config struct {
	ScreenWidth  float32
	ScreenHeight float32

	// CullMargin widens the play area on the left, right and top edges before
	// bullets are discarded.
	CullMargin float32

	ExplosionOffset Vec2

	PlayerHP        uint32
	PlayerHitbox    Hitbox
	PlayerDamping   float32
	PlayerAccel     float32
	ReloadSpeed     uint32
	DeflectorFrames uint32

	PlayerBulletSpeed  float32
	PlayerBulletDamage uint32
	PlayerBulletHitbox Hitbox

	EnemyBulletSpeed  float32
	EnemyBulletHitbox Hitbox
	EnemyHitbox       Hitbox
	TrackingFrames    uint32
	BounceCount       uint32

	// Homing speeds of the player-seeking and enemy-seeking tracking passes.
	TrackingSpeed      float32
	EnemyTrackingSpeed float32
	TrackingSteer      float32

	// Deflected bullets move at least this fast, and slower horizontal drift
	// is zeroed.
	DeflectMinSpeed float32
	// Tracking bullets deflected with more frames left are cut down to this fuse.
	DeflectFuse uint32

	// EnemySpawnInterval is the number of frames between enemy spawns; zero
	// disables spawning.
	EnemySpawnInterval uint32
	EnemySpeed         float32

	Stars StarInfo
	Seed  uint64

	// Workers bounds the data-parallel fan-out inside a system. Zero uses GOMAXPROCS.
	Workers int

	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		ScreenWidth:  600,
		ScreenHeight: 800,
		CullMargin:   10,

		ExplosionOffset: Vec2{-20, -20},

		PlayerHP:        10,
		PlayerHitbox:    Hitbox{DX: 12, DY: 12, W: 24, H: 30},
		PlayerDamping:   1.45,
		PlayerAccel:     1.5,
		ReloadSpeed:     10,
		DeflectorFrames: 12,

		PlayerBulletSpeed:  8,
		PlayerBulletDamage: 1,
		PlayerBulletHitbox: Hitbox{W: 5, H: 10},

		EnemyBulletSpeed:  5,
		EnemyBulletHitbox: Hitbox{W: 6, H: 6},
		EnemyHitbox:       Hitbox{W: 48, H: 36},
		TrackingFrames:    180,
		BounceCount:       2,

		TrackingSpeed:      8.0,
		EnemyTrackingSpeed: 7.0,
		TrackingSteer:      0.02,

		DeflectMinSpeed: 8,
		DeflectFuse:     10,

		EnemySpawnInterval: 90,
		EnemySpeed:         1,

		Stars: StarInfo{
			NumStars:     120,
			Size:         2,
			SizeVariance: 1,
			Vel:          2,
			VelVariance:  1,
		},
		Seed: 1,

		Logger: log.Default(),
	}
}

// Validate reports configuration values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size %vx%v must be positive", c.ScreenWidth, c.ScreenHeight))
	}
	if c.PlayerHP == 0 {
		errs = append(errs, errors.New("player HP must be positive"))
	}
	for name, h := range map[string]Hitbox{
		"player":        c.PlayerHitbox,
		"player bullet": c.PlayerBulletHitbox,
		"enemy bullet":  c.EnemyBulletHitbox,
		"enemy":         c.EnemyHitbox,
	} {
		if h.W < 0 || h.H < 0 {
			errs = append(errs, fmt.Errorf("%s hitbox %vx%v has negative size", name, h.W, h.H))
		}
	}
	if c.PlayerDamping <= 0 {
		errs = append(errs, errors.New("player damping must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) warnf(format string, args ...any) {
	logger := c.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("warning: "+format, args...)
}

// inPlayArea reports whether a bullet at pos is still worth simulating.
func (c *Config) inPlayArea(pos Vec2) bool {
	return pos.X >= -c.CullMargin && pos.X < c.ScreenWidth+c.CullMargin &&
		pos.Y >= -c.CullMargin && pos.Y < c.ScreenHeight
}
