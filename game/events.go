package game

import (
	"time"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/spawn"
)

// Event is a notification emitted by a Session. The set of variants is closed:
// GridChanged, LinesCleared, PiecePlaced, TrayRefilled and GameLost.
type Event interface {
	event()
}

// GridChanged carries the grid contents after a placement, clear or reset.
type GridChanged struct {
	Snapshot []board.Cell
}

// LinesCleared reports the rows and columns emptied by a placement.
type LinesCleared struct {
	Result board.ClearResult
}

// PiecePlaced reports a successful placement. Slot is -1 when the piece did
// not come from the tray.
type PiecePlaced struct {
	Slot   int
	Piece  spawn.BlockModel
	Origin board.Point
}

// TrayRefilled reports a freshly spawned trio.
type TrayRefilled struct {
	Pieces     [3]spawn.BlockModel
	Generation spawn.Generation
}

// GameLost is emitted once when none of the offered pieces fits anywhere.
// The host should end the game at Deadline.
type GameLost struct {
	Deadline time.Time
}

func (GridChanged) event()  {}
func (LinesCleared) event() {}
func (PiecePlaced) event()  {}
func (TrayRefilled) event() {}
func (GameLost) event()     {}

// Listener receives session events in the order they happened.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// eventQueue holds events raised during an operation until it completes, so
// listeners never observe a half-applied placement.
type eventQueue struct {
	pending []Event
}

func (q *eventQueue) push(e Event) {
	q.pending = append(q.pending, e)
}

// flush delivers queued events to l. The queue is reset before dispatch so a
// listener may call back into the session.
func (q *eventQueue) flush(l Listener) {
	if len(q.pending) == 0 {
		return
	}
	pending := q.pending
	q.pending = nil

	if l == nil {
		return
	}
	for _, e := range pending {
		l.OnEvent(e)
	}
}
