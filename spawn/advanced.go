package spawn

import (
	"github.com/plus3/tenten/board"
)

// Placement is a shape at a legal origin together with the absolute cells it covers.
type Placement struct {
	Shape  *board.Shape
	Origin board.Point
	Cells  []board.Point
}

// SearchResult reports the outcome of one Advanced search.
type SearchResult struct {
	// Found is true when Placements holds three pairwise disjoint placements
	// that together complete at least one row or column.
	Found      bool
	Placements [3]Placement
	// Candidates is the total number of placements enumerated.
	Candidates int
	// PerShape holds the candidate count for each pool shape, in pool order.
	PerShape []int
	// Trials is the number of sampled combinations.
	Trials int
}

// Search samples combinations of three legal placements on g, accepting the
// first one whose pieces do not overlap and whose union with the current
// occupancy fills a row or column. Samples are drawn with replacement, so
// shapes with many legal origins are more likely to be chosen.
func (e *Engine) Search(g *board.Grid) SearchResult {
	w, h := g.Width(), g.Height()
	result := SearchResult{PerShape: make([]int, len(e.shapes))}

	var candidates []Placement
	for i, s := range e.shapes {
		count := 0
	scan:
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if !board.CanPlace(g, s, x, y) {
					continue
				}
				candidates = append(candidates, Placement{
					Shape:  s,
					Origin: board.Point{X: x, Y: y},
					Cells:  s.Footprint(x, y),
				})
				count++
				if count >= e.candidateCap {
					break scan
				}
			}
		}
		result.PerShape[i] = count
	}
	result.Candidates = len(candidates)
	e.stats.candidates += int64(len(candidates))

	if len(candidates) < TrioSize {
		return result
	}

	base := g.Mask()
	sim := make([]bool, len(base))
	// stamp[i] == t marks cell i as taken by a piece of trial t.
	stamp := make([]int32, len(base))
	n := len(candidates)

	for t := 1; t <= e.trialBudget; t++ {
		result.Trials = t

		a := candidates[e.rng.IntN(n)]
		b := candidates[e.rng.IntN(n)]
		c := candidates[e.rng.IntN(n)]

		if !claim(stamp, int32(t), w, a, b, c) {
			continue
		}

		copy(sim, base)
		mark(sim, w, a, b, c)
		if !board.HasFullLine(sim, w, h) {
			continue
		}

		result.Found = true
		result.Placements = [3]Placement{a, b, c}
		break
	}
	e.stats.trials += int64(result.Trials)

	return result
}

// claim stamps each placement's cells with t, failing as soon as a cell is
// already stamped by an earlier placement of the same trial.
func claim(stamp []int32, t int32, width int, placements ...Placement) bool {
	for _, p := range placements {
		for _, c := range p.Cells {
			i := c.Y*width + c.X
			if stamp[i] == t {
				return false
			}
			stamp[i] = t
		}
	}
	return true
}

func mark(sim []bool, width int, placements ...Placement) {
	for _, p := range placements {
		for _, c := range p.Cells {
			sim[c.Y*width+c.X] = true
		}
	}
}

func (e *Engine) advancedTrio(g *board.Grid) ([3]BlockModel, bool) {
	result := e.Search(g)
	if !result.Found {
		e.stats.fallbacks++
		e.logger.Debug("advanced search found no clearing trio, using random",
			"candidates", result.Candidates,
			"trials", result.Trials,
		)
		return e.randomTrio(g), true
	}

	shapes := []*board.Shape{
		result.Placements[0].Shape,
		result.Placements[1].Shape,
		result.Placements[2].Shape,
	}
	return e.assemble(shapes), false
}
