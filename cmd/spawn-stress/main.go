package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

func main() {
	configPath := flag.String("config", "", "Path to a tenten YAML config file.")
	games := flag.Int("games", 200, "The number of games the bot should play.")
	duration := flag.Duration("duration", time.Minute, "Stop starting new games after this long.")
	seed := flag.Uint64("seed", 1, "Base seed; game i uses seed+i.")
	mode := flag.String("mode", "", "Override spawn.mode (auto, random, advanced).")
	maxMoves := flag.Int("max-moves", 1000, "End a game after this many moves.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Spawn.Mode = *mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logger, err := cfg.Log.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	shapes, err := cfg.Shapes()
	if err != nil {
		logger.Error("Failed to load shapes", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting spawn stress test", "games", *games, "mode", cfg.Spawn.Mode, "shapes", len(shapes))

	report := &Report{
		Games:          *games,
		Seed:           *seed,
		Mode:           cfg.Spawn.Mode,
		Board:          fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		Shapes:         len(shapes),
		MaxMoves:       *maxMoves,
		Deadline:       *duration,
		GCPauseMetrics: *gcPauseMetrics,
		MoveTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	for i := 0; i < *games; i++ {
		if ctx.Err() != nil {
			logger.Warn("Time limit reached", "completed", report.Completed)
			break
		}
		if err := playGame(ctx, cfg, shapes, *seed+uint64(i), *maxMoves, report); err != nil {
			logger.Error("Game failed", "game", i, "error", err)
			os.Exit(1)
		}
		if (i+1)%50 == 0 {
			logger.Info("Progress", "games", i+1, "moves", report.TotalMoves)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.MoveTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("Simulation finished", "games", report.Completed, "elapsed", report.TotalTime)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("Failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

// playGame runs one bot game with its own engine and session and adds the
// results to report.
func playGame(ctx context.Context, cfg *config.Config, shapes []*board.Shape, seed uint64, maxMoves int, report *Report) error {
	opts := cfg.SpawnOptions(shapes, slog.Default())
	opts.Seed = seed
	engine := spawn.New(opts)

	var lines, trios int64
	sc := cfg.SessionConfig(engine, slog.Default())
	sc.Listener = game.ListenerFunc(func(e game.Event) {
		switch e := e.(type) {
		case game.LinesCleared:
			lines += int64(e.Result.Count())
		case game.TrayRefilled:
			trios++
		}
	})

	s, err := game.NewSession(sc)
	if err != nil {
		return err
	}

	moves := 0
	for moves < maxMoves && !s.IsLost() && ctx.Err() == nil {
		m, ok := chooseMove(s)
		if !ok {
			break
		}

		start := time.Now()
		if _, err := s.PlaceFromTray(m.slot, m.x, m.y); err != nil {
			return fmt.Errorf("move %d: %w", moves, err)
		}
		report.MoveTime.Samples = append(report.MoveTime.Samples, time.Since(start))
		moves++
	}

	report.Completed++
	report.TotalMoves += int64(moves)
	report.TotalLines += lines
	report.TotalTrios += trios
	if s.IsLost() {
		report.Lost++
	}
	report.addSpawn(engine.GetStats())

	return nil
}
