package game

import "github.com/plus3/starfall/ecs"

// AnimationSystem advances every animated sprite by one frame.
type AnimationSystem struct {
	Sprites ecs.Query[struct {
		ecs.EntityId
		*AnimatedSprite
	}]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	for sprite := range s.Sprites.Values() {
		anim := sprite.AnimatedSprite
		anim.CurrentFrame++
		if anim.CurrentFrame < anim.NumFrames {
			continue
		}
		if anim.Temporary {
			frame.Commands.Delete(sprite.EntityId)
		} else {
			anim.CurrentFrame = 0
		}
	}
}
