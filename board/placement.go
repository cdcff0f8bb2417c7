package board

// CanPlace reports whether every cell of s, translated by (ox, oy), is on the
// grid and empty.
func CanPlace(g *Grid, s *Shape, ox, oy int) bool {
	for _, c := range s.cells {
		x := ox + c.DX
		y := oy + c.DY

		if !g.InBounds(x, y) {
			return false
		}

		if !g.cells[g.index(x, y)].IsEmpty() {
			return false
		}
	}

	return true
}

// HasAnyValidPlacement scans every origin on the grid for a legal placement of s.
func HasAnyValidPlacement(g *Grid, s *Shape) bool {
	for oy := 0; oy < g.height; oy++ {
		for ox := 0; ox < g.width; ox++ {
			if CanPlace(g, s, ox, oy) {
				return true
			}
		}
	}
	return false
}

// AnyPlaceable reports whether at least one of shapes fits somewhere on g.
func AnyPlaceable(g *Grid, shapes []*Shape) bool {
	for _, s := range shapes {
		if s != nil && HasAnyValidPlacement(g, s) {
			return true
		}
	}
	return false
}

// Place writes color into every cell of s translated by (ox, oy). It does not
// validate the placement: callers must check CanPlace first. Cells falling
// outside the grid are skipped and logged rather than aborting the write. A
// color that is not Valid writes nothing and is logged.
func Place(g *Grid, s *Shape, color Color, ox, oy int) {
	place(g.cells, g.width, g.height, s, color, ox, oy, g.logger.Warn)
}

func place(cells []Cell, width, height int, s *Shape, color Color, ox, oy int, warn func(string, ...any)) {
	if !color.Valid() {
		if warn != nil {
			warn("placement color out of range", "shape", s.name, "color", color, "max", MaxColors-1)
		}
		return
	}
	for _, c := range s.cells {
		x := ox + c.DX
		y := oy + c.DY

		if x < 0 || y < 0 || x >= width || y >= height {
			if warn != nil {
				warn("placement cell out of bounds", "shape", s.name, "x", x, "y", y)
			}
			continue
		}

		cells[y*width+x] = Occupied(color)
	}
}
