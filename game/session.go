// Package game drives one play session: a grid, the three offered pieces and
// the spawn engine that refills them.
//
// Every operation runs validate, mutate, detect and clear synchronously and
// then flushes the events it raised to the session's Listener. The session
// owns no timers; when the player runs out of moves it emits GameLost with the
// deadline at which the host should end the game.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/spawn"
)

// DefaultLoseDelay is the pause between running out of moves and game over.
const DefaultLoseDelay = time.Second

var (
	// ErrNoEngine is returned by NewSession when Config.Engine is nil.
	ErrNoEngine = errors.New("game: no spawn engine")
	// ErrSlotOutOfRange indicates a tray slot outside 0..spawn.TrioSize-1.
	ErrSlotOutOfRange = errors.New("game: slot out of range")
	// ErrSlotEmpty indicates a tray slot whose piece was already placed.
	ErrSlotEmpty = errors.New("game: slot is empty")
	// ErrCannotPlace indicates a piece that does not fit at the requested origin.
	ErrCannotPlace = errors.New("game: piece does not fit")
	// ErrGameOver is returned by tray placement once the session is lost.
	ErrGameOver = errors.New("game: game is over")
)

// Config configures a Session.
type Config struct {
	// Width and Height default to board.DefaultWidth and board.DefaultHeight.
	Width  int
	Height int
	Engine *spawn.Engine
	// LoseDelay defaults to DefaultLoseDelay. Use a negative value for none.
	LoseDelay time.Duration
	// Now defaults to time.Now.
	Now      func() time.Time
	Listener Listener
	Logger   *slog.Logger
}

// Outcome is the result of a successful placement.
type Outcome struct {
	Result   board.ClearResult
	Snapshot []board.Cell
}

// Session is a single game. It is not safe for concurrent use.
type Session struct {
	grid     *board.Grid
	engine   *spawn.Engine
	tray     [spawn.TrioSize]spawn.BlockModel
	occupied [spawn.TrioSize]bool

	loseDelay time.Duration
	now       func() time.Time
	listener  Listener
	logger    *slog.Logger

	lost       bool
	deadline   time.Time
	generation spawn.Generation

	events  eventQueue
	preview *previewCache
}

// NewSession creates a session and spawns its first trio.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Engine == nil {
		return nil, ErrNoEngine
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}

	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = board.DefaultWidth
	}
	if height == 0 {
		height = board.DefaultHeight
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		grid:      board.NewGrid(width, height, board.WithLogger(logger)),
		engine:    cfg.Engine,
		loseDelay: cfg.LoseDelay,
		now:       cfg.Now,
		listener:  cfg.Listener,
		logger:    logger,
	}
	if s.loseDelay == 0 {
		s.loseDelay = DefaultLoseDelay
	} else if s.loseDelay < 0 {
		s.loseDelay = 0
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.preview = newPreviewCache(width * height * spawn.TrioSize)

	if err := s.refill(); err != nil {
		return nil, err
	}
	s.events.flush(s.listener)
	return s, nil
}

// SetListener replaces the session's listener.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Width is the grid width in cells.
func (s *Session) Width() int { return s.grid.Width() }

// Height is the grid height in cells.
func (s *Session) Height() int { return s.grid.Height() }

// Grid returns a copy of the current grid.
func (s *Session) Grid() *board.Grid {
	return s.grid.Clone()
}

// Cells returns a snapshot of the grid cells in row-major order.
func (s *Session) Cells() []board.Cell {
	return s.grid.Cells()
}

// At returns the cell at (x, y).
func (s *Session) At(x, y int) board.Cell {
	return s.grid.At(x, y)
}

// Engine returns the spawn engine feeding the tray.
func (s *Session) Engine() *spawn.Engine {
	return s.engine
}

// Generation describes how the current trio was spawned.
func (s *Session) Generation() spawn.Generation {
	return s.generation
}

// Offered returns the pieces still in the tray, in slot order.
func (s *Session) Offered() []spawn.BlockModel {
	offered := make([]spawn.BlockModel, 0, spawn.TrioSize)
	for i, ok := range s.occupied {
		if ok {
			offered = append(offered, s.tray[i])
		}
	}
	return offered
}

// Slot returns the piece in tray slot i.
func (s *Session) Slot(i int) (spawn.BlockModel, error) {
	if i < 0 || i >= spawn.TrioSize {
		return spawn.BlockModel{}, fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	if !s.occupied[i] {
		return spawn.BlockModel{}, fmt.Errorf("%w: %d", ErrSlotEmpty, i)
	}
	return s.tray[i], nil
}

// IsLost reports whether the session has run out of moves.
func (s *Session) IsLost() bool {
	return s.lost
}

// Deadline returns the time at which the host should end a lost game.
func (s *Session) Deadline() (time.Time, bool) {
	return s.deadline, s.lost
}

// CanPlaceShape reports whether shape fits at (x, y).
func (s *Session) CanPlaceShape(shape *board.Shape, x, y int) bool {
	return shape != nil && board.CanPlace(s.grid, shape, x, y)
}

// PlaceShape places a piece that is not taken from the tray. It reports false
// and leaves the grid untouched when the piece does not fit or color is not
// valid.
func (s *Session) PlaceShape(shape *board.Shape, color board.Color, x, y int) (Outcome, bool) {
	if !color.Valid() || !s.CanPlaceShape(shape, x, y) {
		return Outcome{}, false
	}

	piece := spawn.BlockModel{Shape: shape, Color: color, Slot: -1}
	out := s.place(piece, x, y)
	s.evaluateLoss()
	s.events.flush(s.listener)
	return out, true
}

// PlaceFromTray places the piece in slot at (x, y), consumes the slot and
// refills the tray once all slots are empty.
func (s *Session) PlaceFromTray(slot, x, y int) (Outcome, error) {
	if s.lost {
		return Outcome{}, ErrGameOver
	}
	piece, err := s.Slot(slot)
	if err != nil {
		return Outcome{}, err
	}
	if !board.CanPlace(s.grid, piece.Shape, x, y) {
		return Outcome{}, fmt.Errorf("%w: %s at (%d,%d)", ErrCannotPlace, piece.Shape.Name(), x, y)
	}

	out := s.place(piece, x, y)
	s.occupied[slot] = false

	if len(s.Offered()) == 0 {
		if err := s.refill(); err != nil {
			s.events.flush(s.listener)
			return out, err
		}
	} else {
		s.evaluateLoss()
	}

	s.events.flush(s.listener)
	return out, nil
}

// Preview reports the lines that placing shape at (x, y) would clear, and
// false when it does not fit.
func (s *Session) Preview(shape *board.Shape, color board.Color, x, y int) (board.ClearResult, bool) {
	if !color.Valid() || !s.CanPlaceShape(shape, x, y) {
		return board.ClearResult{}, false
	}
	return board.SimulateAndDetect(s.grid, shape, color, x, y), true
}

// PreviewSlot is Preview for the piece in a tray slot. Results are memoised
// until the grid or the tray changes; each call returns its own copy.
func (s *Session) PreviewSlot(slot, x, y int) (board.ClearResult, bool) {
	piece, err := s.Slot(slot)
	if err != nil || !s.grid.InBounds(x, y) {
		return board.ClearResult{}, false
	}

	key := s.preview.key(slot, y*s.grid.Width()+x, s.grid.Width()*s.grid.Height())
	hit, ok := s.preview.get(key)
	if !ok {
		result, fits := s.Preview(piece.Shape, piece.Color, x, y)
		hit = previewEntry{result: result, fits: fits}
		s.preview.put(key, hit)
	}
	return board.ClearResult{Rows: slices.Clone(hit.result.Rows), Cols: slices.Clone(hit.result.Cols)}, hit.fits
}

// Reset empties the grid, clears the loss state and spawns a new trio.
func (s *Session) Reset() error {
	s.grid.Reset()
	s.lost = false
	s.deadline = time.Time{}
	s.occupied = [spawn.TrioSize]bool{}
	s.preview.clear()
	s.events.push(GridChanged{Snapshot: s.grid.Cells()})

	err := s.refill()
	s.events.flush(s.listener)
	return err
}

func (s *Session) place(piece spawn.BlockModel, x, y int) Outcome {
	board.Place(s.grid, piece.Shape, piece.Color, x, y)
	result := board.DetectFullLines(s.grid.Cells(), s.grid.Width(), s.grid.Height())
	board.ApplyClear(s.grid, result)
	s.preview.clear()

	out := Outcome{Result: result, Snapshot: s.grid.Cells()}

	s.events.push(PiecePlaced{Slot: piece.Slot, Piece: piece, Origin: board.Point{X: x, Y: y}})
	if !result.Empty() {
		s.logger.Debug("lines cleared", "rows", result.Rows, "cols", result.Cols)
		s.events.push(LinesCleared{Result: result})
	}
	s.events.push(GridChanged{Snapshot: out.Snapshot})

	return out
}

func (s *Session) refill() error {
	trio, err := s.engine.GenerateThree(s.grid)
	if err != nil {
		return err
	}

	s.tray = trio
	s.occupied = [spawn.TrioSize]bool{true, true, true}
	s.generation = s.engine.Last()
	s.preview.clear()
	s.events.push(TrayRefilled{Pieces: trio, Generation: s.generation})

	s.evaluateLoss()
	return nil
}

func (s *Session) evaluateLoss() {
	if s.lost {
		return
	}

	offered := s.Offered()
	if len(offered) == 0 {
		return
	}
	shapes := make([]*board.Shape, len(offered))
	for i, piece := range offered {
		shapes[i] = piece.Shape
	}
	if board.AnyPlaceable(s.grid, shapes) {
		return
	}

	s.lost = true
	s.deadline = s.now().Add(s.loseDelay)
	s.logger.Info("no moves left", "pieces", len(offered), "occupied", s.grid.OccupiedCount())
	s.events.push(GameLost{Deadline: s.deadline})
}
