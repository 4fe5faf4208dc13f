package game

import (
	"errors"
	"fmt"
)

// ErrAssetMissing is returned when a sound or animation name is not in the
// asset tables.
var ErrAssetMissing = errors.New("asset missing")

// Asset names looked up by the simulation.
const (
	AnimExplosion = "explosion"

	SoundBoom    = "boom"
	SoundDeflect = "deflect"
	SoundDead    = "dead"
	SoundShoot   = "shoot"
)

// Sound is a playable sound handle owned by the audio collaborator.
type Sound interface {
	Play()
}

// Assets holds the lookup tables the simulation reads from. The simulation
// never mutates them.
type Assets struct {
	Animations map[string]AnimatedSprite
	Sounds     map[string]Sound
}

// Animation returns a fresh copy of the named animation template, reset to its
// first frame.
func (a *Assets) Animation(name string) (AnimatedSprite, error) {
	anim, ok := a.Animations[name]
	if !ok {
		return AnimatedSprite{}, fmt.Errorf("animation %q: %w", name, ErrAssetMissing)
	}
	anim.CurrentFrame = 0
	if anim.NumFrames == 0 {
		anim.NumFrames = uint32(len(anim.Frames))
	}
	return anim, nil
}

// Sound returns the named sound handle.
func (a *Assets) Sound(name string) (Sound, error) {
	sound, ok := a.Sounds[name]
	if !ok || sound == nil {
		return nil, fmt.Errorf("sound %q: %w", name, ErrAssetMissing)
	}
	return sound, nil
}
