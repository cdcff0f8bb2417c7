package main

import (
	"github.com/plus3/tenten/debugui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/game"
)

// ControlSystem turns the Input singleton into session calls. Input is
// ignored while the debug panels hold the mouse or keyboard.
type ControlSystem struct {
	Play  ecs.Singleton[Play]
	Input ecs.Singleton[Input]
	Imgui ecs.Singleton[debugui.ImguiInputState]
}

func (c *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	play, in := c.Play.Get(), c.Input.Get()
	defer func() {
		in.Click = false
		in.Reset = false
	}()

	if c.Imgui.Get().Captured() {
		return
	}

	if in.Reset {
		play.reset()
	}
	play.hover(in.CursorX, in.CursorY)
	if in.Cancel {
		play.Selected = -1
	}
	if in.Click {
		play.click(in.CursorX, in.CursorY)
	}
}

// TraySystem mirrors the session's tray as TrayPiece entities, driven by the
// events queued on Play.
type TraySystem struct {
	Play ecs.Singleton[Play]
	Tray ecs.Query[struct {
		ecs.EntityId
		*TrayPiece
	}]
}

func (t *TraySystem) Execute(frame *ecs.UpdateFrame) {
	play := t.Play.Get()

	for _, e := range play.Pending {
		switch e := e.(type) {
		case game.TrayRefilled:
			for id := range t.Tray.Iter() {
				frame.Commands.Delete(id)
			}
			for slot, piece := range e.Pieces {
				frame.Commands.Spawn(TrayPiece{Slot: slot, Piece: piece})
			}
			play.Selected = -1
		case game.PiecePlaced:
			for id, item := range t.Tray.Iter() {
				if item.Slot == e.Slot {
					frame.Commands.Delete(id)
				}
			}
			if play.Selected == e.Slot {
				play.Selected = -1
			}
		}
	}

	clear(play.Pending)
	play.Pending = play.Pending[:0]
}
