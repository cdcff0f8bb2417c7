// Package board holds the grid occupancy buffer and the pure placement and
// line-clear operations that act on it.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	// DefaultWidth and DefaultHeight are the canonical board dimensions.
	DefaultWidth  = 8
	DefaultHeight = 8
)

var (
	// ErrMalformedGrid indicates a textual grid that cannot be parsed.
	ErrMalformedGrid = errors.New("board: malformed grid text")
)

// Grid is a width×height occupancy buffer stored row-major (index y*width+x).
// A Grid is owned by a single session and is not safe for concurrent use.
type Grid struct {
	width  int
	height int
	cells  []Cell
	logger *slog.Logger
}

// GridOption configures a Grid.
type GridOption func(*Grid)

// WithLogger sets the logger used for placement diagnostics.
func WithLogger(logger *slog.Logger) GridOption {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGrid creates an empty grid. It panics if either dimension is not positive.
func NewGrid(width, height int, opts ...GridOption) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board: invalid grid size %dx%d", width, height))
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// At returns the cell at (x, y). Out-of-bounds positions read as Empty.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[g.index(x, y)]
}

// Cells returns a copy of the occupancy buffer.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Mask returns the occupancy buffer as booleans, true meaning occupied.
func (g *Grid) Mask() []bool {
	mask := make([]bool, len(g.cells))
	for i, c := range g.cells {
		mask[i] = !c.IsEmpty()
	}
	return mask
}

// OccupiedCount returns the number of non-empty cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy sharing only the logger.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  g.Cells(),
		logger: g.logger,
	}
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// String renders the grid one row per line, '.' for empty cells and a base-36
// digit for the color of occupied cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			color, ok := g.cells[g.index(x, y)].Color()
			if !ok {
				b.WriteByte('.')
				continue
			}
			b.WriteByte(colorDigit(color))
		}
	}
	return b.String()
}

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func colorDigit(c Color) byte {
	if int(c) < len(digits) {
		return digits[c]
	}
	return '#'
}

// ParseGrid reads the format produced by Grid.String. Blank lines and
// surrounding whitespace are ignored; '#' is read as color 0.
func ParseGrid(text string, opts ...GridOption) (*Grid, error) {
	var rows []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}

	width := len(rows[0])
	g := NewGrid(width, len(rows), opts...)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			ch := row[x]
			switch {
			case ch == '.':
				continue
			case ch == '#':
				g.cells[g.index(x, y)] = Occupied(0)
			default:
				idx := strings.IndexByte(digits, ch)
				if idx < 0 {
					return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformedGrid, ch, x, y)
				}
				g.cells[g.index(x, y)] = Occupied(Color(idx))
			}
		}
	}
	return g, nil
}
