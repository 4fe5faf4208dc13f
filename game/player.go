package game

import "github.com/plus3/starfall/ecs"

// PlayerControlSystem applies the frame's input to the player: steering,
// firing and arming the deflector.
type PlayerControlSystem struct {
	Config ecs.Singleton[Config]
	Assets ecs.Singleton[Assets]
	Input  ecs.Singleton[InputState]
	Sounds ecs.Singleton[QueuedSounds]
	Player ecs.Singleton[PlayerEntity]

	Players ecs.Query[struct {
		ecs.EntityId
		*Position
		*Velocity
		*Player
	}]
}

func (s *PlayerControlSystem) Execute(frame *ecs.UpdateFrame) {
	id, ok := s.Player.Get().Id()
	if !ok {
		return
	}
	p := s.Players.Get(id)
	if p == nil {
		return
	}

	cfg := s.Config.Get()
	input := s.Input.Get().Input

	p.Velocity.Vec2 = p.Velocity.Scale(1 / cfg.PlayerDamping).Add(input.Move.Scale(cfg.PlayerAccel))

	if p.Player.ReloadTimer > 0 {
		p.Player.ReloadTimer--
	} else if input.Fire {
		frame.Commands.Spawn(NewPlayerBullet(cfg, p.Player.BulletType, p.Position.Vec2, p.Velocity.Vec2)...)
		p.Player.ReloadTimer = p.Player.ReloadSpeed
		queueSound(cfg, s.Assets.Get(), s.Sounds.Get(), SoundShoot)
	}

	if p.Player.DeflectorTimer > 0 {
		p.Player.DeflectorTimer--
	} else if input.Deflect {
		p.Player.DeflectorTimer = p.Player.DeflectorFrames
	}
}
