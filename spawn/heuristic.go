package spawn

import "github.com/plus3/tenten/board"

// DefaultFillThreshold is the filled ratio above which the board counts as
// nearly full.
const DefaultFillThreshold = 0.8

// Heuristic decides from board occupancy alone whether the Advanced strategy
// is worth running. The zero value uses DefaultFillThreshold.
type Heuristic struct {
	FillThreshold float64
}

// DefaultHeuristic is the heuristic used by ShouldUseAdvanced.
var DefaultHeuristic = Heuristic{FillThreshold: DefaultFillThreshold}

// ShouldUseAdvanced reports whether g is nearly full, or has a row or column
// missing exactly one cell.
func ShouldUseAdvanced(g *board.Grid) bool {
	return DefaultHeuristic.ShouldUseAdvanced(g)
}

// ShouldUseAdvanced applies h to g.
func (h Heuristic) ShouldUseAdvanced(g *board.Grid) bool {
	threshold := h.FillThreshold
	if threshold <= 0 {
		threshold = DefaultFillThreshold
	}

	w, hgt := g.Width(), g.Height()
	filledRatio := float64(g.OccupiedCount()) / float64(w*hgt)
	if filledRatio > threshold {
		return true
	}

	for y := 0; y < hgt; y++ {
		empty := 0
		for x := 0; x < w; x++ {
			if g.At(x, y).IsEmpty() {
				empty++
			}
		}
		if empty == 1 {
			return true
		}
	}

	for x := 0; x < w; x++ {
		empty := 0
		for y := 0; y < hgt; y++ {
			if g.At(x, y).IsEmpty() {
				empty++
			}
		}
		if empty == 1 {
			return true
		}
	}

	return false
}
