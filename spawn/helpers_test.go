package spawn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/spawn"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

var (
	dot     = board.MustShape("dot", board.Offset{DX: 0, DY: 0})
	bar2h   = board.MustShape("bar2h", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0})
	bar3v   = board.MustShape("bar3v", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 0, DY: 2})
	square2 = board.MustShape("square2", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 1, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 1, DY: 1})
	ell     = board.MustShape("ell", board.Offset{DX: 0, DY: 0}, board.Offset{DX: 0, DY: 1}, board.Offset{DX: 0, DY: 2}, board.Offset{DX: 1, DY: 2})

	testPool    = []*board.Shape{dot, bar2h, bar3v, square2, ell}
	testPalette = []board.Color{0, 1, 2, 3, 4}
)

// loadBoard returns the named grid from testdata/boards.txtar.
func loadBoard(t testing.TB, name string) *board.Grid {
	t.Helper()

	archive, err := txtar.ParseFile("testdata/boards.txtar")
	require.NoError(t, err)

	for _, f := range archive.Files {
		if f.Name != name {
			continue
		}
		g, err := board.ParseGrid(string(f.Data))
		require.NoError(t, err)
		return g
	}

	t.Fatalf("board %q not found in testdata/boards.txtar", name)
	return nil
}

func newEngine(seed uint64, shapes []*board.Shape, mode spawn.Mode) *spawn.Engine {
	return spawn.New(spawn.Options{
		Shapes:  shapes,
		Palette: testPalette,
		Mode:    mode,
		Rand:    rand.New(rand.NewPCG(seed, seed+1)),
	})
}

func trioShapes(trio [3]spawn.BlockModel) []*board.Shape {
	return []*board.Shape{trio[0].Shape, trio[1].Shape, trio[2].Shape}
}
