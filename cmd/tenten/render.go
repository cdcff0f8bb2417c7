package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/debugui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/spawn"
)

var (
	background = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	emptyCell  = color.RGBA{0x33, 0x33, 0x3d, 0xff}
	slotBorder = color.RGBA{0x55, 0x55, 0x66, 0xff}
	selection  = color.RGBA{0xee, 0xee, 0xee, 0xff}
	blocked    = color.RGBA{0xd0, 0x40, 0x40, 0xff}
)

// RenderSystem draws the board, the ghost of the selected piece, the tray
// entities and the status line into the Screen singleton.
type RenderSystem struct {
	Play   ecs.Singleton[Play]
	Screen ecs.Singleton[Screen]
	Tray   ecs.Query[struct{ *TrayPiece }]

	palette debugui.Palette
}

func (r *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	play, screen := r.Play.Get(), r.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	img := screen.Image
	img.Fill(background)

	s := play.Session
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			fill := emptyCell
			if c, ok := s.At(x, y).Color(); ok {
				fill = r.palette(c)
			}
			r.fillCell(play, x, y, fill)
		}
	}

	if gh, ok := play.ghost(); ok {
		r.drawGhost(play, gh)
	}

	for slot := 0; slot < spawn.TrioSize; slot++ {
		sx, sy := play.Layout.slotOrigin(slot)
		border := slotBorder
		if slot == play.Selected {
			border = selection
		}
		vector.StrokeRect(img, sx, sy, traySlotSize, traySlotSize, 2, border, false)
	}
	for item := range r.Tray.Values() {
		sx, sy := play.Layout.slotOrigin(item.Slot)
		r.drawPiece(img, item.Piece.Shape, r.palette(item.Piece.Color), sx, sy)
	}

	_, bh := play.Layout.boardSize()
	status := fmt.Sprintf("next spawn: %s   R: reset  Q: quit", s.Generation())
	ebitenutil.DebugPrintAt(img, status, margin, margin/2-8)
	if play.gameOver() {
		ebitenutil.DebugPrintAt(img, "NO MOVES LEFT - press R to play again", margin, margin+bh+8)
	}
}

func (r *RenderSystem) fillCell(play *Play, x, y int, fill color.RGBA) {
	px, py := play.Layout.cellOrigin(x, y)
	vector.DrawFilledRect(r.Screen.Get().Image, px, py, cellSize-cellGap, cellSize-cellGap, fill, false)
}

func (r *RenderSystem) drawGhost(play *Play, gh ghost) {
	w, h := play.Session.Width(), play.Session.Height()

	fill := fade(r.palette(gh.piece.Color), 0x90)
	if !gh.fits {
		fill = fade(blocked, 0x70)
	}
	for _, p := range gh.piece.Shape.Footprint(gh.x, gh.y) {
		if p.X >= w || p.Y >= h {
			continue
		}
		r.fillCell(play, p.X, p.Y, fill)
	}

	highlight := fade(selection, 0x40)
	for _, row := range gh.result.Rows {
		for x := 0; x < w; x++ {
			r.fillCell(play, x, row, highlight)
		}
	}
	for _, col := range gh.result.Cols {
		for y := 0; y < h; y++ {
			r.fillCell(play, col, y, highlight)
		}
	}
}

// drawPiece centres shape inside a tray slot.
func (r *RenderSystem) drawPiece(img *ebiten.Image, shape *board.Shape, fill color.RGBA, sx, sy float32) {
	ox := sx + float32(traySlotSize-shape.Width()*trayCellSize)/2
	oy := sy + float32(traySlotSize-shape.Height()*trayCellSize)/2
	for _, o := range shape.Offsets() {
		px := ox + float32(o.DX*trayCellSize)
		py := oy + float32(o.DY*trayCellSize)
		vector.DrawFilledRect(img, px, py, trayCellSize-1, trayCellSize-1, fill, false)
	}
}

// fade scales c to alpha a, keeping it premultiplied.
func fade(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 0xff) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
