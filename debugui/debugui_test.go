package debugui_test

import (
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
	dot   = board.MustShape("dot", board.Offset{DX: 0, DY: 0})
	bar3h = board.MustShape("bar3h", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0}, board.Offset{DX: 2, DY: 0})
	bar4v = board.MustShape("bar4v", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 0, DY: 2}, board.Offset{DX: 0, DY: 3})
)

func TestEventLogRingBuffer(t *testing.T) {
	log := debugui.NewEventLog(3)
	assert.Empty(t, log.Entries())

	for i := 0; i < 5; i++ {
		log.OnEvent(game.PiecePlaced{Slot: i, Piece: spawn.BlockModel{Shape: dot, Slot: i}, Origin: board.Point{X: i}})
	}

	entries := log.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "slot 2 dot at (2,0)", entries[0].Text)
	assert.Equal(t, "slot 3 dot at (3,0)", entries[1].Text)
	assert.Equal(t, "slot 4 dot at (4,0)", entries[2].Text)

	log.Clear()
	assert.Empty(t, log.Entries())
}

func TestDescribe(t *testing.T) {
	deadline := time.Date(2024, 1, 2, 3, 4, 5, 600_000_000, time.UTC)

	tests := []struct {
		event game.Event
		kind  string
		text  string
	}{
		{
			game.GridChanged{Snapshot: []board.Cell{board.Empty, board.Occupied(1), board.Occupied(0)}},
			"grid", "2 cells occupied",
		},
		{
			game.LinesCleared{Result: board.ClearResult{Rows: []int{0}, Cols: []int{3, 4}}},
			"clear", "rows [0] cols [3 4]",
		},
		{
			game.TrayRefilled{
				Pieces:     [3]spawn.BlockModel{{Shape: dot}, {Shape: bar3h}, {Shape: bar4v}},
				Generation: spawn.Generation{Mode: spawn.ModeAdvanced, FellBack: true},
			},
			"spawn", "dot bar3h bar4v [advanced (fell back to random)]",
		},
		{game.GameLost{Deadline: deadline}, "lost", "game over at 03:04:05.600"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			kind, text := debugui.Describe(tt.event)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestSummarize(t *testing.T) {
	engine := spawn.New(spawn.Options{
		Shapes:  []*board.Shape{dot, bar3h, bar4v},
		Palette: []board.Color{0, 1, 2},
		Mode:    spawn.ModeRandom,
		Seed:    9,
	})
	s, err := game.NewSession(game.Config{Width: 4, Height: 4, Engine: engine})
	require.NoError(t, err)

	_, ok := s.PlaceShape(bar3h, 0, 0, 0)
	require.True(t, ok)

	sum := debugui.Summarize(s, spawn.DefaultHeuristic)
	assert.Equal(t, 4, sum.Width)
	assert.Equal(t, 3, sum.Occupied)
	assert.InDelta(t, 3.0/16.0, sum.FillRatio, 1e-9)
	assert.Equal(t, []int{0}, sum.NearRows)
	assert.Empty(t, sum.NearCols)
	assert.True(t, sum.Advanced)
	assert.False(t, sum.Lost)

	require.Len(t, sum.Pieces, 3)
	origins := map[string]int{}
	for _, p := range sum.Pieces {
		assert.False(t, p.Empty)
		origins[p.Shape] = p.Origins
	}
	assert.Equal(t, 13, origins["dot"])
	assert.Equal(t, 6, origins["bar3h"])
	assert.Equal(t, 1, origins["bar4v"])

	slot, err := s.Slot(0)
	require.NoError(t, err)
	x, y := 3, 0
	if slot.Shape == bar3h {
		x, y = 0, 1
	}
	_, err = s.PlaceFromTray(0, x, y)
	require.NoError(t, err)

	sum = debugui.Summarize(s, spawn.DefaultHeuristic)
	assert.True(t, sum.Pieces[0].Empty)
}

func TestSpawnSessionPanels(t *testing.T) {
	engine := spawn.New(spawn.Options{
		Shapes:  []*board.Shape{dot, bar3h},
		Palette: []board.Color{0},
		Mode:    spawn.ModeRandom,
		Seed:    3,
	})
	s, err := game.NewSession(game.Config{Engine: engine})
	require.NoError(t, err)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	events := debugui.SpawnSessionPanels(storage, debugui.SessionPanels{Session: s, Heuristic: spawn.DefaultHeuristic})
	require.NotNil(t, events)

	panels := ecs.NewQuery[struct{ *debugui.ImguiItem }](storage)
	assert.Equal(t, 3, panels.Count())
	for item := range panels.Values() {
		assert.NotNil(t, item.Render)
	}

	input := ecs.NewSingleton[debugui.ImguiInputState](storage)
	require.True(t, input.Exists())
	assert.False(t, input.Get().Captured())

	input.Get().WantCaptureKeyboard = true
	assert.True(t, input.Get().Captured())

	var missing *debugui.ImguiInputState
	assert.False(t, missing.Captured())
}
