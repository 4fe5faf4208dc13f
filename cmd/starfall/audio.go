package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/starfall/game"
)

const sampleRate = beep.SampleRate(44100)

// cue plays a pre-rendered effect through ebiten's audio context.
type cue struct {
	name   string
	player *audio.Player
}

func (c *cue) Play() {
	if err := c.player.Rewind(); err != nil {
		log.Printf("warning: rewinding %s: %v", c.name, err)
		return
	}
	c.player.Play()
}

// newSoundBank synthesizes the placeholder effects the simulation asks for.
func newSoundBank() (map[string]game.Sound, error) {
	ctx := audio.NewContext(int(sampleRate))

	builders := map[string]func() (beep.Streamer, error){
		game.SoundShoot:   shootSound,
		game.SoundBoom:    boomSound,
		game.SoundDeflect: deflectSound,
		game.SoundDead:    deadSound,
	}

	sounds := make(map[string]game.Sound, len(builders))
	for name, build := range builders {
		streamer, err := build()
		if err != nil {
			return nil, fmt.Errorf("synthesizing %s: %w", name, err)
		}
		player := ctx.NewPlayerFromBytes(renderPCM(streamer))
		player.SetVolume(0.5)
		sounds[name] = &cue{name: name, player: player}
	}
	return sounds, nil
}

func shootSound() (beep.Streamer, error) {
	tone, err := generators.SquareTone(sampleRate, 1320)
	if err != nil {
		return nil, err
	}
	return volume(beep.Take(sampleRate.N(40*time.Millisecond), tone), 0.15), nil
}

func boomSound() (beep.Streamer, error) {
	rng := rand.New(rand.NewPCG(1, 2))
	total := sampleRate.N(250 * time.Millisecond)
	pos := 0
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := min(len(samples), total-pos)
		for i := range n {
			decay := 1 - float64(pos+i)/float64(total)
			v := (rng.Float64()*2 - 1) * decay * decay
			samples[i] = [2]float64{v, v}
		}
		pos += n
		return n, true
	})
	return volume(noise, 0.6), nil
}

func deflectSound() (beep.Streamer, error) {
	low, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return nil, err
	}
	high, err := generators.SineTone(sampleRate, 990)
	if err != nil {
		return nil, err
	}
	return volume(beep.Seq(
		beep.Take(sampleRate.N(50*time.Millisecond), low),
		beep.Take(sampleRate.N(70*time.Millisecond), high),
	), 0.4), nil
}

func deadSound() (beep.Streamer, error) {
	var parts []beep.Streamer
	for _, freq := range []float64{440, 330, 220} {
		tone, err := generators.TriangleTone(sampleRate, freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(180*time.Millisecond), tone))
	}
	return volume(beep.Seq(parts...), 0.5), nil
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// renderPCM drains s into 16-bit little-endian stereo, the format ebiten
// players consume.
func renderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = max(-1, min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok {
			return out
		}
	}
}
