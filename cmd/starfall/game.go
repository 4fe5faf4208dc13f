package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/game"
)

var (
	playerColor = color.RGBA{0xe0, 0xe0, 0xff, 0xff}
	enemyColor  = color.RGBA{0xff, 0x50, 0x50, 0xff}
	hostileShot = color.RGBA{0xff, 0xa0, 0x20, 0xff}
	friendlyHit = color.RGBA{0x00, 0xff, 0xff, 0xff}
)

// Game adapts a Simulation to ebiten's update/draw loop.
type Game struct {
	cfg    game.Config
	assets *game.Assets
	sim    *game.Simulation
	hpText string
	debug  *debugOverlay
}

func newGame(cfg game.Config, assets *game.Assets) (*Game, error) {
	sim, err := game.New(cfg, assets)
	if err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, assets: assets, sim: sim}, nil
}

func (g *Game) Update() error {
	if g.debug != nil {
		if err := g.debug.update(g.sim); err != nil {
			log.Printf("debug overlay: %v", err)
		}
	}
	if g.debug != nil && g.debug.overlay.CapturesInput() {
		return g.step(game.Input{})
	}

	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.sim.Dead() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			sim, err := game.New(g.cfg, g.assets)
			if err != nil {
				return err
			}
			g.sim = sim
		}
		return nil
	}
	return g.step(pollInput())
}

func (g *Game) step(in game.Input) error {
	if g.sim.Dead() {
		return nil
	}
	if err := g.sim.Step(in); err != nil {
		log.Printf("frame error: %v", err)
	}
	for _, sound := range g.sim.DrainSounds() {
		sound.Play()
	}
	return nil
}

func pollInput() game.Input {
	var in game.Input
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Move.Y++
	}
	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Deflect = ebiten.IsKeyPressed(ebiten.KeyShift)
	return in
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	storage := g.sim.Storage()

	for r := range ecs.NewView[struct {
		*game.Position
		*game.ColorRect
	}](storage).Values() {
		vector.DrawFilledRect(screen, r.Position.X, r.Position.Y, r.ColorRect.W, r.ColorRect.H, r.ColorRect.Color, false)
	}

	playerId, _ := g.sim.PlayerId()
	for e := range ecs.NewView[struct {
		ecs.EntityId
		*game.Position
		*game.Hitbox
		Bullet *game.Bullet `ecs:"optional"`
	}](storage).Values() {
		rect := e.Hitbox.Rect(e.Position.Vec2)
		clr := enemyColor
		switch {
		case e.EntityId == playerId:
			clr = playerColor
		case e.Bullet != nil && e.Bullet.DamagesWho == game.FactionPlayer:
			clr = hostileShot
		case e.Bullet != nil:
			clr = friendlyHit
		}
		vector.DrawFilledRect(screen, rect.X, rect.Y, rect.W, rect.H, clr, false)
	}

	for s := range ecs.NewView[struct {
		*game.Position
		*game.AnimatedSprite
	}](storage).Values() {
		drawImage(screen, s.AnimatedSprite.Frame(), s.Position.Vec2)
	}

	for s := range ecs.NewView[struct {
		*game.Position
		*game.Sprite
	}](storage).Values() {
		drawImage(screen, s.Sprite.Image, s.Position.Vec2)
	}

	if g.sim.TakeHPRedraw() || g.hpText == "" {
		hp, _ := g.sim.PlayerHP()
		g.hpText = fmt.Sprintf("HP %d", hp)
	}
	ebitenutil.DebugPrint(screen, g.hpText)
	if g.sim.Dead() {
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R to restart", int(g.cfg.ScreenWidth)/2-90, int(g.cfg.ScreenHeight)/2)
	}
	if g.debug != nil {
		g.debug.draw(screen)
	}
}

func drawImage(screen *ebiten.Image, img any, pos game.Vec2) {
	ebImg, ok := img.(*ebiten.Image)
	if !ok {
		return
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(pos.X), float64(pos.Y))
	screen.DrawImage(ebImg, opts)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.layout(int(g.cfg.ScreenWidth), int(g.cfg.ScreenHeight))
	}
	return int(g.cfg.ScreenWidth), int(g.cfg.ScreenHeight)
}
