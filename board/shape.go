package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyShape indicates a shape was declared without any cells.
	ErrEmptyShape = errors.New("board: shape must have at least one cell")
	// ErrNegativeOffset indicates a shape offset with a negative component.
	ErrNegativeOffset = errors.New("board: shape offsets must be non-negative")
	// ErrDuplicateOffset indicates the same offset appears twice in a shape.
	ErrDuplicateOffset = errors.New("board: shape offsets must be unique")
)

// Offset is a cell position relative to a shape's origin.
type Offset struct {
	DX, DY int
}

// Point is an absolute cell position on a grid.
type Point struct {
	X, Y int
}

// Shape is an immutable polyomino. Shapes are shared by pointer between every
// piece that uses them, and pointer identity is what makes two shapes "the same".
type Shape struct {
	name   string
	cells  []Offset
	width  int
	height int
}

// NewShape builds a shape from its offsets. Offsets keep their declared order.
func NewShape(name string, offsets ...Offset) (*Shape, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyShape, name)
	}

	seen := make(map[Offset]struct{}, len(offsets))
	s := &Shape{
		name:  name,
		cells: make([]Offset, 0, len(offsets)),
	}
	for _, o := range offsets {
		if o.DX < 0 || o.DY < 0 {
			return nil, fmt.Errorf("%w: %q has (%d,%d)", ErrNegativeOffset, name, o.DX, o.DY)
		}
		if _, dup := seen[o]; dup {
			return nil, fmt.Errorf("%w: %q has (%d,%d) twice", ErrDuplicateOffset, name, o.DX, o.DY)
		}
		seen[o] = struct{}{}
		s.cells = append(s.cells, o)
		s.width = max(s.width, o.DX+1)
		s.height = max(s.height, o.DY+1)
	}

	return s, nil
}

// MustShape is like NewShape but panics on invalid input. Intended for
// package-level shape tables.
func MustShape(name string, offsets ...Offset) *Shape {
	s, err := NewShape(name, offsets...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the shape's identifier.
func (s *Shape) Name() string { return s.name }

// Width is max(DX)+1.
func (s *Shape) Width() int { return s.width }

// Height is max(DY)+1.
func (s *Shape) Height() int { return s.height }

// Size returns the number of cells in the shape.
func (s *Shape) Size() int { return len(s.cells) }

// Offsets returns a copy of the shape's offsets.
func (s *Shape) Offsets() []Offset {
	out := make([]Offset, len(s.cells))
	copy(out, s.cells)
	return out
}

// Footprint returns the absolute cells covered when the shape's origin sits at (ox, oy).
// No bounds checking is done.
func (s *Shape) Footprint(ox, oy int) []Point {
	out := make([]Point, len(s.cells))
	for i, c := range s.cells {
		out[i] = Point{X: ox + c.DX, Y: oy + c.DY}
	}
	return out
}

// String draws the shape inside its bounding box, '#' for filled cells.
func (s *Shape) String() string {
	rows := make([][]byte, s.height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", s.width))
	}
	for _, c := range s.cells {
		rows[c.DY][c.DX] = '#'
	}

	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.Write(row)
	}
	return b.String()
}
