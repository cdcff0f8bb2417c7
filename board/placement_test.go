package board_test

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/plus3/tenten/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dot    = board.MustShape("dot", board.Offset{DX: 0, DY: 0})
	corner = board.MustShape("corner", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 1, DY: 1})
	square = board.MustShape("square2", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 1, DY: 1})
	line5  = board.MustShape("line5v", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 0, DY: 2}, board.Offset{DX: 0, DY: 3}, board.Offset{DX: 0, DY: 4})
)

func randomGrid(rng *rand.Rand, width, height int, density float64) *board.Grid {
	g := board.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rng.Float64() < density {
				board.Place(g, dot, board.Color(rng.IntN(5)), x, y)
			}
		}
	}
	return g
}

func TestCanPlace(t *testing.T) {
	g, err := board.ParseGrid(`
		........
		.1......
		........
		........
		........
		........
		........
		.......2
	`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		shape *board.Shape
		x, y  int
		want  bool
	}{
		{"empty origin", dot, 0, 0, true},
		{"occupied origin", dot, 1, 1, false},
		{"corner overlaps", corner, 1, 0, false},
		{"corner clear", corner, 2, 0, true},
		{"negative origin", dot, -1, 0, false},
		{"past right edge", square, 7, 0, false},
		{"past bottom edge", line5, 0, 4, false},
		{"touching bottom edge", line5, 0, 3, true},
		{"bottom right occupied", dot, 7, 7, false},
		{"square below occupied", square, 6, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, board.CanPlace(g, tt.shape, tt.x, tt.y))
		})
	}
}

// CanPlace is true exactly when every footprint cell is in bounds and empty.
func TestCanPlaceMatchesFootprint(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	shapes := []*board.Shape{dot, corner, square, line5}

	for trial := 0; trial < 50; trial++ {
		g := randomGrid(rng, 8, 8, 0.4)
		for _, s := range shapes {
			for oy := -2; oy < 10; oy++ {
				for ox := -2; ox < 10; ox++ {
					want := true
					for _, p := range s.Footprint(ox, oy) {
						if !g.InBounds(p.X, p.Y) || !g.At(p.X, p.Y).IsEmpty() {
							want = false
							break
						}
					}
					require.Equal(t, want, board.CanPlace(g, s, ox, oy), "%s at (%d,%d)\n%s", s.Name(), ox, oy, g)
				}
			}
		}
	}
}

// After a legal Place, the footprint holds the color, nothing else changed,
// and the same placement is no longer legal.
func TestPlaceEffect(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	shapes := []*board.Shape{dot, corner, square, line5}

	for trial := 0; trial < 200; trial++ {
		g := randomGrid(rng, 8, 8, 0.3)
		s := shapes[rng.IntN(len(shapes))]
		ox, oy := rng.IntN(8), rng.IntN(8)
		if !board.CanPlace(g, s, ox, oy) {
			continue
		}

		before := g.Cells()
		board.Place(g, s, 6, ox, oy)

		inFootprint := map[board.Point]bool{}
		for _, p := range s.Footprint(ox, oy) {
			inFootprint[p] = true
		}
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if inFootprint[board.Point{X: x, Y: y}] {
					assert.Equal(t, board.Occupied(6), g.At(x, y))
				} else {
					assert.Equal(t, before[y*8+x], g.At(x, y))
				}
			}
		}
		assert.False(t, board.CanPlace(g, s, ox, oy))
	}
}

func TestPlaceSkipsOutOfBoundsCells(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	g := board.NewGrid(4, 4, board.WithLogger(logger))

	board.Place(g, square, 1, 3, 3)

	assert.Equal(t, 1, g.OccupiedCount())
	assert.Equal(t, board.Occupied(1), g.At(3, 3))
	assert.Contains(t, buf.String(), "placement cell out of bounds")
}

func TestPlaceRejectsColorOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	g := board.NewGrid(4, 4, board.WithLogger(logger))

	assert.True(t, board.Color(board.MaxColors-1).Valid())
	assert.False(t, board.Color(board.MaxColors).Valid())

	board.Place(g, dot, board.MaxColors-1, 0, 0)
	c, ok := g.At(0, 0).Color()
	require.True(t, ok)
	assert.Equal(t, board.Color(board.MaxColors-1), c)
	assert.False(t, board.CanPlace(g, dot, 0, 0))

	board.Place(g, dot, board.MaxColors, 1, 0)
	assert.Equal(t, 1, g.OccupiedCount(), "an out of range color is never written as Empty")
	assert.Contains(t, buf.String(), "placement color out of range")

	g, err := board.ParseGrid(`
		111.
		....
	`)
	require.NoError(t, err)
	result := board.SimulateAndDetect(g, dot, board.MaxColors, 3, 0)
	assert.Equal(t, []int{0}, result.Rows)
}

func TestHasAnyValidPlacement(t *testing.T) {
	g, err := board.ParseGrid(`
		1111
		1.11
		1111
		11..
	`)
	require.NoError(t, err)

	assert.True(t, board.HasAnyValidPlacement(g, dot))
	assert.False(t, board.HasAnyValidPlacement(g, square))
	assert.False(t, board.HasAnyValidPlacement(g, corner))
	assert.False(t, board.HasAnyValidPlacement(g, line5))

	bar := board.MustShape("bar2", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0})
	assert.True(t, board.HasAnyValidPlacement(g, bar))

	assert.True(t, board.AnyPlaceable(g, []*board.Shape{square, bar}))
	assert.False(t, board.AnyPlaceable(g, []*board.Shape{square, corner, nil}))
}

func TestClearedPlacementIsPlaceableAgain(t *testing.T) {
	g, err := board.ParseGrid(`
		111.
		....
		....
		....
	`)
	require.NoError(t, err)

	board.Place(g, dot, 0, 3, 0)
	result := board.DetectFullLines(g.Cells(), g.Width(), g.Height())
	board.ApplyClear(g, result)

	assert.True(t, board.CanPlace(g, dot, 3, 0))
}
