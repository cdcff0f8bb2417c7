package spawn

import (
	"math/rand/v2"
	"slices"

	"github.com/plus3/tenten/board"
)

// DistinctColors shuffles palette and returns its first n entries. When the
// palette has n or fewer colors the whole shuffled palette is returned and
// callers cycle through it by index.
func DistinctColors(rng *rand.Rand, palette []board.Color, n int) []board.Color {
	colors := slices.Clone(palette)
	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})

	if len(colors) <= n {
		return colors
	}
	return colors[:n]
}

func (e *Engine) distinctColors(n int) []board.Color {
	return DistinctColors(e.rng, e.palette, n)
}
