package board

// ClearResult lists the full rows and columns found by a clear check, each in
// ascending order.
type ClearResult struct {
	Rows []int
	Cols []int
}

// Count is the number of lines cleared: rows plus columns.
func (r ClearResult) Count() int {
	return len(r.Rows) + len(r.Cols)
}

// Empty reports whether no line is full.
func (r ClearResult) Empty() bool {
	return r.Count() == 0
}

// DetectFullLines finds every fully occupied row and column of a row-major
// cell buffer. A cell may belong to both a full row and a full column.
func DetectFullLines(cells []Cell, width, height int) ClearResult {
	return fullLines(cells, width, height, func(c Cell) bool { return !c.IsEmpty() })
}

// DetectFullMask is DetectFullLines over a boolean occupancy buffer.
func DetectFullMask(mask []bool, width, height int) ClearResult {
	return fullLines(mask, width, height, func(b bool) bool { return b })
}

func fullLines[T any](buf []T, width, height int, filled func(T) bool) ClearResult {
	var result ClearResult

	for y := 0; y < height; y++ {
		full := true
		for x := 0; x < width; x++ {
			if !filled(buf[y*width+x]) {
				full = false
				break
			}
		}
		if full {
			result.Rows = append(result.Rows, y)
		}
	}

	for x := 0; x < width; x++ {
		full := true
		for y := 0; y < height; y++ {
			if !filled(buf[y*width+x]) {
				full = false
				break
			}
		}
		if full {
			result.Cols = append(result.Cols, x)
		}
	}

	return result
}

// HasFullLine reports whether mask contains at least one full row or column.
// It stops at the first one found.
func HasFullLine(mask []bool, width, height int) bool {
	for y := 0; y < height; y++ {
		row := mask[y*width : (y+1)*width]
		full := true
		for _, filled := range row {
			if !filled {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}

	for x := 0; x < width; x++ {
		full := true
		for y := 0; y < height; y++ {
			if !mask[y*width+x] {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}

	return false
}

// SimulateAndDetect reports the lines that placing s at (ox, oy) would clear.
// It works on a copy of the buffer; g is never modified.
func SimulateAndDetect(g *Grid, s *Shape, color Color, ox, oy int) ClearResult {
	if !color.Valid() {
		// Detection only looks at occupancy.
		color = 0
	}
	sim := g.Cells()
	place(sim, g.width, g.height, s, color, ox, oy, nil)
	return DetectFullLines(sim, g.width, g.height)
}

// ApplyClear empties every cell in the reported rows and columns. Indices
// outside the grid are ignored.
func ApplyClear(g *Grid, r ClearResult) {
	for _, y := range r.Rows {
		if y < 0 || y >= g.height {
			continue
		}
		clear(g.cells[y*g.width : (y+1)*g.width])
	}

	for _, x := range r.Cols {
		if x < 0 || x >= g.width {
			continue
		}
		for y := 0; y < g.height; y++ {
			g.cells[g.index(x, y)] = Empty
		}
	}
}
