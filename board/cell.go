package board

// Color is a palette tag. The engine never interprets it beyond equality.
type Color uint8

// MaxColors is the number of distinct colors a Cell can hold. Valid tags are
// 0 through MaxColors-1.
const MaxColors = 255

// Valid reports whether c fits in a Cell.
func (c Color) Valid() bool {
	return c < MaxColors
}

// Cell is either Empty or Occupied(color). The zero value is Empty.
type Cell uint8

// Empty is the unoccupied cell.
const Empty Cell = 0

// Occupied returns a cell holding the given color. c must be Valid; the tag
// MaxColors would wrap to Empty.
func Occupied(c Color) Cell {
	return Cell(c) + 1
}

// IsEmpty reports whether the cell holds no color.
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Color returns the cell's color and true, or false for an empty cell.
func (c Cell) Color() (Color, bool) {
	if c == Empty {
		return 0, false
	}
	return Color(c - 1), true
}
