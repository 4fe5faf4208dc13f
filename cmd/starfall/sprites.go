package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/starfall/game"
)

const explosionFrames = 12

// explosionAnimation draws a fading fireball. Frames are 40x40 so the default
// explosion offset centres them on the impact point.
func explosionAnimation() game.AnimatedSprite {
	frames := make([]image.Image, explosionFrames)
	for i := range frames {
		img := ebiten.NewImage(40, 40)
		t := float32(i) / explosionFrames
		radius := 6 + 14*t
		alpha := uint8(255 * (1 - t))
		vector.DrawFilledCircle(img, 20, 20, radius, color.RGBA{0xff, uint8(200 * (1 - t)), 0x20, alpha}, true)
		vector.DrawFilledCircle(img, 20, 20, radius/2, color.RGBA{0xff, 0xff, 0xc0, alpha}, true)
		frames[i] = img
	}
	return game.AnimatedSprite{
		Frames:    frames,
		NumFrames: explosionFrames,
		Temporary: true,
	}
}
