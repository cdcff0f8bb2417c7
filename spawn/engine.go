// Package spawn decides which three pieces a player is offered next.
//
// An Engine runs one of two strategies per call. The Random strategy prefers
// distinct shapes that still fit on the board. The Advanced strategy samples
// combinations of legal placements looking for three pieces that fit together
// and complete at least one row or column. A Heuristic picks between them from
// the current board occupancy, and both strategies fall back to Random when
// they cannot do better.
package spawn

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/plus3/tenten/board"
)

const (
	// TrioSize is the number of pieces offered per round.
	TrioSize = 3
	// DefaultCandidateCap bounds how many placements the Advanced strategy
	// enumerates per shape.
	DefaultCandidateCap = 300
	// DefaultTrialBudget bounds how many combinations the Advanced strategy samples.
	DefaultTrialBudget = 4000
)

// Mode selects the strategy used by GenerateThree.
type Mode int

const (
	// ModeAuto consults the Heuristic on every call.
	ModeAuto Mode = iota
	// ModeRandom always uses the Random strategy.
	ModeRandom
	// ModeAdvanced always tries the Advanced strategy first.
	ModeAdvanced
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeRandom:
		return "random"
	case ModeAdvanced:
		return "advanced"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name ("auto", "random", "advanced") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "random":
		return ModeRandom, nil
	case "advanced":
		return ModeAdvanced, nil
	}
	return ModeAuto, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// BlockModel is one offered piece.
type BlockModel struct {
	Shape *board.Shape
	Color board.Color
	Slot  int
}

// Options configures an Engine.
type Options struct {
	// Shapes is the pool to draw from. It is never modified.
	Shapes []*board.Shape
	// Palette lists the colors pieces may take.
	Palette []board.Color
	// Mode forces a strategy; the zero value lets the Heuristic decide.
	Mode Mode
	// Heuristic decides when ModeAuto runs the Advanced strategy.
	Heuristic Heuristic
	// Rand is the engine's PRNG. When nil, one is seeded from Seed.
	Rand *rand.Rand
	// Seed seeds the PRNG when Rand is nil. Zero picks a random seed.
	Seed uint64
	// CandidateCap overrides DefaultCandidateCap when positive.
	CandidateCap int
	// TrialBudget overrides DefaultTrialBudget when positive.
	TrialBudget int
	Logger      *slog.Logger
}

// Generation describes how the most recent trio was produced.
type Generation struct {
	Mode     Mode
	FellBack bool
}

// String names the mode, noting a fallback from Advanced.
func (g Generation) String() string {
	if g.FellBack {
		return g.Mode.String() + " (fell back to random)"
	}
	return g.Mode.String()
}

// Engine produces offered trios. It keeps PRNG state and statistics, so each
// game session needs its own Engine.
type Engine struct {
	shapes       []*board.Shape
	palette      []board.Color
	mode         Mode
	heuristic    Heuristic
	rng          *rand.Rand
	candidateCap int
	trialBudget  int
	logger       *slog.Logger

	last  Generation
	stats engineStats
}

// New creates an Engine. Configuration problems are reported by Validate and
// by every Generate call rather than here.
func New(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		shapes:       slices.Clone(opts.Shapes),
		palette:      slices.Clone(opts.Palette),
		mode:         opts.Mode,
		heuristic:    opts.Heuristic,
		rng:          rng,
		candidateCap: DefaultCandidateCap,
		trialBudget:  DefaultTrialBudget,
		logger:       logger,
	}
	if opts.CandidateCap > 0 {
		e.candidateCap = opts.CandidateCap
	}
	if opts.TrialBudget > 0 {
		e.trialBudget = opts.TrialBudget
	}
	e.stats.init()

	if n := len(e.shapes); n > 0 && n < TrioSize {
		logger.Warn("shape pool smaller than a trio, shapes will repeat", "shapes", n)
	}

	return e
}

// Validate reports ErrEmptyShapePool, ErrEmptyPalette or ErrInvalidPalette if
// the engine cannot spawn.
func (e *Engine) Validate() error {
	if len(e.shapes) == 0 || slices.Contains(e.shapes, nil) {
		return ErrEmptyShapePool
	}
	if len(e.palette) == 0 {
		return ErrEmptyPalette
	}
	for _, c := range e.palette {
		if !c.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidPalette, c)
		}
	}
	return nil
}

// Shapes returns the engine's shape pool.
func (e *Engine) Shapes() []*board.Shape {
	return slices.Clone(e.shapes)
}

// Last describes the most recent GenerateThree call.
func (e *Engine) Last() Generation {
	return e.last
}

// GenerateThree picks the strategy for g and returns the next trio.
func (e *Engine) GenerateThree(g *board.Grid) ([3]BlockModel, error) {
	if err := e.Validate(); err != nil {
		return [3]BlockModel{}, err
	}

	mode := e.mode
	if mode == ModeAuto {
		mode = ModeRandom
		if e.heuristic.ShouldUseAdvanced(g) {
			mode = ModeAdvanced
		}
	}

	start := time.Now()
	var trio [3]BlockModel
	fellBack := false
	if mode == ModeAdvanced {
		trio, fellBack = e.advancedTrio(g)
		e.stats.advanced.record(time.Since(start))
	} else {
		trio = e.randomTrio(g)
		e.stats.random.record(time.Since(start))
	}

	e.last = Generation{Mode: mode, FellBack: fellBack}
	e.logger.Debug("spawned trio",
		"mode", mode,
		"fell_back", fellBack,
		"shapes", []string{trio[0].Shape.Name(), trio[1].Shape.Name(), trio[2].Shape.Name()},
	)

	return trio, nil
}

// GenerateThreeRandom runs the Random strategy regardless of mode.
func (e *Engine) GenerateThreeRandom(g *board.Grid) ([3]BlockModel, error) {
	if err := e.Validate(); err != nil {
		return [3]BlockModel{}, err
	}

	start := time.Now()
	trio := e.randomTrio(g)
	e.stats.random.record(time.Since(start))
	e.last = Generation{Mode: ModeRandom}
	return trio, nil
}

// GenerateThreeAdvanced runs the Advanced strategy regardless of mode,
// falling back to Random when the search comes up empty.
func (e *Engine) GenerateThreeAdvanced(g *board.Grid) ([3]BlockModel, error) {
	if err := e.Validate(); err != nil {
		return [3]BlockModel{}, err
	}

	start := time.Now()
	trio, fellBack := e.advancedTrio(g)
	e.stats.advanced.record(time.Since(start))
	e.last = Generation{Mode: ModeAdvanced, FellBack: fellBack}
	return trio, nil
}

// assemble turns up to three shapes into a trio. When fewer than three shapes
// were found the selected ones repeat in order.
func (e *Engine) assemble(shapes []*board.Shape) [3]BlockModel {
	colors := e.distinctColors(TrioSize)

	var trio [3]BlockModel
	for i := range trio {
		trio[i] = BlockModel{
			Shape: shapes[i%len(shapes)],
			Color: colors[i%len(colors)],
			Slot:  i,
		}
	}
	return trio
}

func (e *Engine) shuffle(shapes []*board.Shape) {
	e.rng.Shuffle(len(shapes), func(i, j int) {
		shapes[i], shapes[j] = shapes[j], shapes[i]
	})
}
