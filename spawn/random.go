package spawn

import (
	"slices"

	"github.com/plus3/tenten/board"
)

// randomTrio prefers distinct shapes that fit somewhere on g. Only when the
// board is too constrained does it take distinct shapes that may not fit.
func (e *Engine) randomTrio(g *board.Grid) [3]BlockModel {
	placeable := make([]*board.Shape, 0, len(e.shapes))
	for _, s := range e.shapes {
		if board.HasAnyValidPlacement(g, s) {
			placeable = append(placeable, s)
		}
	}
	e.shuffle(placeable)

	picked := make([]*board.Shape, 0, TrioSize)
	used := make(map[*board.Shape]struct{}, TrioSize)
	pick := func(candidates []*board.Shape) {
		for _, s := range candidates {
			if len(picked) == TrioSize {
				return
			}
			if _, ok := used[s]; ok {
				continue
			}
			used[s] = struct{}{}
			picked = append(picked, s)
		}
	}

	pick(placeable)
	if len(picked) < TrioSize {
		all := slices.Clone(e.shapes)
		e.shuffle(all)
		pick(all)
	}

	return e.assemble(picked)
}
