package game

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/tenten/board"
)

type previewEntry struct {
	result board.ClearResult
	fits   bool
}

// previewCache memoises PreviewSlot results for the current grid and tray.
// Hover previews ask for the same origin every frame.
type previewCache struct {
	entries *intmap.Map[uint64, previewEntry]
}

func newPreviewCache(capacity int) *previewCache {
	return &previewCache{entries: intmap.New[uint64, previewEntry](capacity)}
}

// key packs a slot and a cell index into a single map key.
func (c *previewCache) key(slot, cell, cells int) uint64 {
	return uint64(slot)*uint64(cells) + uint64(cell)
}

func (c *previewCache) get(key uint64) (previewEntry, bool) {
	return c.entries.Get(key)
}

func (c *previewCache) put(key uint64, e previewEntry) {
	c.entries.Put(key, e)
}

func (c *previewCache) clear() {
	c.entries.Clear()
}
