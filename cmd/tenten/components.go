package main

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tenten/debugui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

// Play is the singleton holding the running session and what the player has
// selected and is pointing at.
type Play struct {
	Session *game.Session
	Layout  layout
	Logger  *slog.Logger
	Now     func() time.Time

	Selected int
	Hovering bool
	HoverX   int
	HoverY   int

	// Pending holds session events the TraySystem has not applied yet.
	Pending []game.Event
}

// OnEvent queues e for the TraySystem. Play is installed as (or forwarded
// to by) the session's listener.
func (p *Play) OnEvent(e game.Event) {
	p.Pending = append(p.Pending, e)
}

// Input is the singleton carrying this frame's pointer and keyboard state.
// Click and Reset are edges and are consumed by the ControlSystem.
type Input struct {
	CursorX int
	CursorY int
	Click   bool
	Cancel  bool
	Reset   bool
}

// Screen is the singleton holding the image the RenderSystem draws into.
type Screen struct {
	Image *ebiten.Image
}

// TrayPiece is a component for one offered piece still waiting in the tray.
type TrayPiece struct {
	Slot  int
	Piece spawn.BlockModel
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[TrayPiece](registry)
	debugui.RegisterComponents(registry)
}
