// Command tenten is a playable desktop host for the block puzzle.
//
// Click a piece in the tray to select it, then click a board cell to drop
// the piece with its top-left corner there. Right click cancels the
// selection, R starts over and Q or Escape quits. Pass -debug for the
// inspector panels.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tenten/config"
	debugui_ebiten "github.com/plus3/tenten/debugui/ebiten"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

const (
	debugScreenWidth  = 1280
	debugScreenHeight = 720
)

func main() {
	configPath := flag.String("config", "", "Path to a tenten YAML config file.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui inspector panels.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
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

	engine := spawn.New(cfg.SpawnOptions(shapes, logger))
	session, err := game.NewSession(cfg.SessionConfig(engine, logger))
	if err != nil {
		logger.Error("Failed to start session", "error", err)
		os.Exit(1)
	}

	w := newWorld(session, logger, &PointerSystem{})
	g := &Game{world: w}

	if *debug {
		w.withDebugPanels(cfg.RGBA, spawn.Heuristic{FillThreshold: cfg.Spawn.FillThreshold})
		g.imgui = debugui_ebiten.NewImguiBackend("tenten", debugScreenWidth, debugScreenHeight)
	} else {
		width, height := w.play.Get().Layout.screenSize()
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("tenten")
	}
	w.draw.Register(&RenderSystem{palette: cfg.RGBA})

	logger.Info("Session started", "board", fmt.Sprintf("%dx%d", session.Width(), session.Height()), "shapes", len(shapes))

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("Game exited", "error", err)
		os.Exit(1)
	}
}
