package main

import (
	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/spawn"
)

// gameOver reports whether the session is lost and its deadline has passed.
// Both come from the session, so a reset from anywhere clears it.
func (p *Play) gameOver() bool {
	if !p.Session.IsLost() {
		return false
	}
	deadline, _ := p.Session.Deadline()
	return !p.Now().Before(deadline)
}

func (p *Play) hover(px, py int) {
	p.HoverX, p.HoverY, p.Hovering = p.Layout.cellAt(px, py)
}

func (p *Play) click(px, py int) {
	if p.Session.IsLost() {
		return
	}

	if slot, ok := p.Layout.slotAt(px, py); ok {
		if _, err := p.Session.Slot(slot); err == nil {
			p.Selected = slot
		}
		return
	}

	x, y, ok := p.Layout.cellAt(px, py)
	if !ok || p.Selected < 0 {
		return
	}

	slot := p.Selected
	out, err := p.Session.PlaceFromTray(slot, x, y)
	if err != nil {
		p.Logger.Debug("placement rejected", "slot", slot, "x", x, "y", y, "error", err)
		return
	}
	if p.Selected == slot {
		p.Selected = -1
	}
	if !out.Result.Empty() {
		p.Logger.Info("lines cleared", "rows", out.Result.Rows, "cols", out.Result.Cols)
	}
}

func (p *Play) reset() {
	p.Selected = -1
	if err := p.Session.Reset(); err != nil {
		p.Logger.Error("reset failed", "error", err)
	}
}

// ghost is the selected piece at the hovered cell and the lines it would clear.
type ghost struct {
	piece  spawn.BlockModel
	x, y   int
	fits   bool
	result board.ClearResult
}

func (p *Play) ghost() (ghost, bool) {
	if !p.Hovering || p.Selected < 0 || p.Session.IsLost() {
		return ghost{}, false
	}
	piece, err := p.Session.Slot(p.Selected)
	if err != nil {
		return ghost{}, false
	}

	result, fits := p.Session.PreviewSlot(p.Selected, p.HoverX, p.HoverY)
	return ghost{piece: piece, x: p.HoverX, y: p.HoverY, fits: fits, result: result}, true
}
