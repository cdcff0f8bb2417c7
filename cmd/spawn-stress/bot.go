package main

import (
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

// move is a tray slot and the origin to drop it at.
type move struct {
	slot, x, y int
	lines      int
	size       int
}

// better orders candidate moves: more lines cleared first, then larger
// pieces, so the bot gets rid of awkward shapes while the board is open.
func (m move) better(o move) bool {
	if m.lines != o.lines {
		return m.lines > o.lines
	}
	return m.size > o.size
}

// chooseMove returns the greedy bot's next move, scanning every offered
// piece at every origin. It reports false when nothing fits.
func chooseMove(s *game.Session) (move, bool) {
	var best move
	found := false

	for slot := 0; slot < spawn.TrioSize; slot++ {
		piece, err := s.Slot(slot)
		if err != nil {
			continue
		}
		for y := 0; y < s.Height(); y++ {
			for x := 0; x < s.Width(); x++ {
				result, ok := s.PreviewSlot(slot, x, y)
				if !ok {
					continue
				}
				m := move{slot: slot, x: x, y: y, lines: result.Count(), size: piece.Shape.Size()}
				if !found || m.better(best) {
					best, found = m, true
				}
			}
		}
	}
	return best, found
}
