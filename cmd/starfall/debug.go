package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/starfall/ecs/debugui"
	debugebiten "github.com/plus3/starfall/ecs/debugui/ebiten"
	"github.com/plus3/starfall/game"
)

// debugOverlay draws the ECS inspector windows over the running simulation.
type debugOverlay struct {
	backend debugebiten.ImguiBackend
	overlay *debugui.Overlay
}

func newDebugOverlay(cfg game.Config, sim *game.Simulation) *debugOverlay {
	return &debugOverlay{
		backend: debugebiten.NewImguiBackend("Starfall", int(cfg.ScreenWidth), int(cfg.ScreenHeight)),
		overlay: debugui.NewOverlay(target(sim)),
	}
}

func target(sim *game.Simulation) debugui.Target {
	return debugui.Target{Storage: sim.Storage(), Scheduler: sim.Scheduler()}
}

func (d *debugOverlay) update(sim *game.Simulation) error {
	d.overlay.SetTarget(target(sim))
	d.backend.BeginFrame()
	defer d.backend.EndFrame()
	return d.overlay.Update()
}

func (d *debugOverlay) draw(screen *ebiten.Image) {
	d.backend.Draw(screen)
}

func (d *debugOverlay) layout(width, height int) {
	d.backend.Layout(width, height)
}
