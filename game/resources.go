package game

import "github.com/plus3/starfall/ecs"

// PlayerEntity refers to the player's entity. Ref is zeroed by the store once
// the player is deleted.
type PlayerEntity struct {
	Ref *ecs.EntityRef
}

// Id returns the player's current entity id, or false once the player is gone.
func (p *PlayerEntity) Id() (ecs.EntityId, bool) {
	if p.Ref == nil || p.Ref.Id == 0 {
		return 0, false
	}
	return p.Ref.Id, true
}

// Dead is set when the player's HP reaches zero.
type Dead struct {
	Value bool
}

// QueuedSounds collects the sound cues requested during a frame, in order.
type QueuedSounds struct {
	Sounds []Sound
}

// HPText tells the UI that the player's HP display is stale.
type HPText struct {
	NeedsRedraw bool
}

// Input is the player's intent for one frame. Move components are in [-1, 1].
type Input struct {
	Move    Vec2
	Fire    bool
	Deflect bool
}

type InputState struct {
	Input
}

// queueSound appends the named cue, logging instead when the asset is missing.
func queueSound(cfg *Config, assets *Assets, queue *QueuedSounds, name string) {
	sound, err := assets.Sound(name)
	if err != nil {
		cfg.warnf("queueing sound: %v", err)
		return
	}
	queue.Sounds = append(queue.Sounds, sound)
}

// spawnExplosion queues a temporary explosion animation at pos.
func spawnExplosion(frame *ecs.UpdateFrame, cfg *Config, assets *Assets, pos Vec2) {
	anim, err := assets.Animation(AnimExplosion)
	if err != nil {
		cfg.warnf("spawning explosion: %v", err)
		return
	}
	anim.Temporary = true
	frame.Commands.Spawn(Position{pos.Add(cfg.ExplosionOffset)}, anim)
}
