package game

import "github.com/plus3/starfall/ecs"

// DeathSystem removes every entity out of hit points. Losing the player ends
// the game.
type DeathSystem struct {
	Config ecs.Singleton[Config]
	Assets ecs.Singleton[Assets]
	Sounds ecs.Singleton[QueuedSounds]
	Dead   ecs.Singleton[Dead]
	Player ecs.Singleton[PlayerEntity]

	Healths ecs.Query[struct {
		ecs.EntityId
		*HP
	}]
}

func (s *DeathSystem) Execute(frame *ecs.UpdateFrame) {
	playerId, hasPlayer := s.Player.Get().Id()

	for entity := range s.Healths.Values() {
		if entity.HP.Remaining > 0 {
			continue
		}
		frame.Commands.Delete(entity.EntityId)

		if hasPlayer && entity.EntityId == playerId {
			s.Dead.Get().Value = true
			queueSound(s.Config.Get(), s.Assets.Get(), s.Sounds.Get(), SoundDead)
		}
	}
}
