package main

import "github.com/plus3/tenten/spawn"

const (
	margin       = 32
	cellSize     = 40
	cellGap      = 2
	trayCellSize = 18
	traySlotSize = 5*trayCellSize + 20
	trayGap      = 24
)

// layout maps screen pixels to board cells and tray slots.
type layout struct {
	width, height int
}

func (l layout) boardSize() (int, int) {
	return l.width * cellSize, l.height * cellSize
}

// screenSize is the window size needed for the board and the tray.
func (l layout) screenSize() (int, int) {
	bw, bh := l.boardSize()
	trayW := spawn.TrioSize*traySlotSize + (spawn.TrioSize-1)*trayGap
	return 2*margin + max(bw, trayW), 3*margin + bh + traySlotSize
}

// cellOrigin is the top-left pixel of board cell (x, y).
func (l layout) cellOrigin(x, y int) (float32, float32) {
	return float32(margin + x*cellSize), float32(margin + y*cellSize)
}

// cellAt returns the board cell under pixel (px, py).
func (l layout) cellAt(px, py int) (int, int, bool) {
	bw, bh := l.boardSize()
	if px < margin || py < margin || px >= margin+bw || py >= margin+bh {
		return 0, 0, false
	}
	return (px - margin) / cellSize, (py - margin) / cellSize, true
}

// slotOrigin is the top-left pixel of tray slot i.
func (l layout) slotOrigin(i int) (float32, float32) {
	_, bh := l.boardSize()
	return float32(margin + i*(traySlotSize+trayGap)), float32(2*margin + bh)
}

// slotAt returns the tray slot under pixel (px, py).
func (l layout) slotAt(px, py int) (int, bool) {
	for i := 0; i < spawn.TrioSize; i++ {
		x, y := l.slotOrigin(i)
		if float32(px) >= x && float32(px) < x+traySlotSize && float32(py) >= y && float32(py) < y+traySlotSize {
			return i, true
		}
	}
	return 0, false
}
