package main

import (
	"image/color"
	"log/slog"
	"testing"
	"time"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/debugui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dot     = board.MustShape("dot", board.Offset{DX: 0, DY: 0})
	bar2h   = board.MustShape("bar2h", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0})
	square2 = board.MustShape("square2", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 1, DY: 1})
)

func newTestWorld(t *testing.T, cfg game.Config, shapes ...*board.Shape) *world {
	t.Helper()

	cfg.Engine = spawn.New(spawn.Options{Shapes: shapes, Palette: []board.Color{0, 1, 2}, Mode: spawn.ModeRandom, Seed: 8})
	s, err := game.NewSession(cfg)
	require.NoError(t, err)

	w := newWorld(s, slog.Default())
	if cfg.Now != nil {
		w.play.Get().Now = cfg.Now
	}
	return w
}

// point moves the cursor to (px, py) and runs one frame.
func (w *world) point(px, py int) {
	in := w.input.Get()
	in.CursorX, in.CursorY = px, py
	w.update.Once(1.0 / 60.0)
}

// click clicks at (px, py) and runs one frame.
func (w *world) click(px, py int) {
	w.input.Get().Click = true
	w.point(px, py)
}

func (w *world) trayPieces() []TrayPiece {
	var pieces []TrayPiece
	for item := range ecs.NewQuery[struct{ *TrayPiece }](w.storage).Values() {
		pieces = append(pieces, *item.TrayPiece)
	}
	return pieces
}

// slotCenter and cellCenter return pixel positions inside a slot or cell.
func slotCenter(l layout, i int) (int, int) {
	x, y := l.slotOrigin(i)
	return int(x) + traySlotSize/2, int(y) + traySlotSize/2
}

func cellCenter(l layout, x, y int) (int, int) {
	px, py := l.cellOrigin(x, y)
	return int(px) + cellSize/2, int(py) + cellSize/2
}

func TestLayout(t *testing.T) {
	l := layout{width: 8, height: 8}

	x, y, ok := l.cellAt(cellCenter(l, 3, 5))
	require.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 5, y)

	_, _, ok = l.cellAt(margin-1, margin)
	assert.False(t, ok)
	_, _, ok = l.cellAt(margin+8*cellSize, margin)
	assert.False(t, ok)

	for i := 0; i < spawn.TrioSize; i++ {
		slot, ok := l.slotAt(slotCenter(l, i))
		require.True(t, ok)
		assert.Equal(t, i, slot)
	}
	_, ok = l.slotAt(cellCenter(l, 0, 0))
	assert.False(t, ok)

	w, h := l.screenSize()
	sx, sy := l.slotOrigin(spawn.TrioSize - 1)
	assert.GreaterOrEqual(t, w, int(sx)+traySlotSize)
	assert.GreaterOrEqual(t, h, int(sy)+traySlotSize)
}

func TestSelectAndPlace(t *testing.T) {
	w := newTestWorld(t, game.Config{}, dot, bar2h, square2)
	play := w.play.Get()
	l := play.Layout
	require.Len(t, w.trayPieces(), 3)

	// Clicking the board with nothing selected does nothing.
	w.click(cellCenter(l, 0, 0))
	assert.Equal(t, 0, play.Session.Grid().OccupiedCount())
	assert.False(t, w.input.Get().Click, "the click is consumed")

	w.click(slotCenter(l, 1))
	assert.Equal(t, 1, play.Selected)

	w.point(cellCenter(l, 2, 2))
	gh, ok := play.ghost()
	require.True(t, ok)
	assert.True(t, gh.fits)
	assert.Equal(t, 2, gh.x)

	piece, err := play.Session.Slot(1)
	require.NoError(t, err)
	w.click(cellCenter(l, 2, 2))
	assert.Equal(t, -1, play.Selected)
	assert.Equal(t, piece.Shape.Size(), play.Session.Grid().OccupiedCount())

	pieces := w.trayPieces()
	require.Len(t, pieces, 2, "the placed piece's entity is deleted")
	for _, p := range pieces {
		assert.NotEqual(t, 1, p.Slot)
	}

	// The emptied slot cannot be selected again.
	w.click(slotCenter(l, 1))
	assert.Equal(t, -1, play.Selected)

	w.click(slotCenter(l, 0))
	assert.Equal(t, 0, play.Selected)

	w.input.Get().Cancel = true
	w.point(cellCenter(l, 2, 2))
	assert.Equal(t, -1, play.Selected)
	_, ok = play.ghost()
	assert.False(t, ok)
}

func TestTrayRefillRespawnsEntities(t *testing.T) {
	w := newTestWorld(t, game.Config{}, dot)
	play := w.play.Get()
	l := play.Layout

	for slot := 0; slot < spawn.TrioSize; slot++ {
		w.click(slotCenter(l, slot))
		w.click(cellCenter(l, slot, 0))
	}
	assert.Equal(t, 3, play.Session.Grid().OccupiedCount())
	assert.Empty(t, play.Pending)

	pieces := w.trayPieces()
	require.Len(t, pieces, 3)
	slots := make([]int, 0, len(pieces))
	for _, p := range pieces {
		slots = append(slots, p.Slot)
		assert.Equal(t, dot, p.Piece.Shape)
	}
	assert.ElementsMatch(t, []int{0, 1, 2}, slots)
}

func TestGameOverFollowsSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	w := newTestWorld(t, game.Config{Width: 3, Height: 3, LoseDelay: 2 * time.Second, Now: clock}, square2)
	play := w.play.Get()
	l := play.Layout

	w.click(slotCenter(l, 0))
	w.click(cellCenter(l, 0, 0))
	require.True(t, play.Session.IsLost(), "no 2x2 hole is left")
	assert.False(t, play.gameOver(), "the host waits for the deadline")

	w.click(slotCenter(l, 1))
	assert.Equal(t, -1, play.Selected, "input is ignored once the game is lost")

	now = now.Add(2 * time.Second)
	assert.True(t, play.gameOver())

	// A reset that bypasses the controls, like the inspector's button.
	require.NoError(t, play.Session.Reset())
	assert.False(t, play.gameOver())

	w.point(cellCenter(l, 1, 1))
	assert.Len(t, w.trayPieces(), 3)

	w.click(slotCenter(l, 0))
	assert.Equal(t, 0, play.Selected)
	w.point(cellCenter(l, 0, 0))
	_, ok := play.ghost()
	assert.True(t, ok)
}

func TestControlsYieldToDebugPanels(t *testing.T) {
	w := newTestWorld(t, game.Config{}, dot)
	play := w.play.Get()
	imgui := ecs.NewSingleton(w.storage, debugui.ImguiInputState{WantCaptureMouse: true})

	w.click(slotCenter(play.Layout, 0))
	assert.Equal(t, -1, play.Selected)
	assert.False(t, w.input.Get().Click)

	imgui.Get().WantCaptureMouse = false
	w.click(slotCenter(play.Layout, 0))
	assert.Equal(t, 0, play.Selected)
}

func TestFade(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0x40}, fade(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 0x40))
	assert.Equal(t, color.RGBA{R: 0x80, A: 0x80}, fade(color.RGBA{R: 0xff, A: 0xff}, 0x80))
}
