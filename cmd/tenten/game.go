package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/tenten/debugui/ebiten"
	"github.com/plus3/tenten/ecs"
)

// PointerSystem samples Ebiten's mouse and keyboard into the Input singleton.
type PointerSystem struct {
	Input ecs.Singleton[Input]

	prevLeft  bool
	prevReset bool
}

func (p *PointerSystem) Execute(frame *ecs.UpdateFrame) {
	in := p.Input.Get()

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	reset := ebiten.IsKeyPressed(ebiten.KeyR)

	in.CursorX, in.CursorY = ebiten.CursorPosition()
	in.Click = left && !p.prevLeft
	in.Reset = reset && !p.prevReset
	in.Cancel = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	p.prevLeft, p.prevReset = left, reset
}

// Game implements ebiten.Game by running the world's update scheduler from
// Update and its draw scheduler from Draw.
type Game struct {
	world *world
	imgui *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	g.world.update.Once(1.0 / float64(ebiten.TPS()))
	if g.imgui != nil {
		g.imgui.EndFrame()
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.screen.Get().Image = screen
	g.world.draw.Once(0)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
