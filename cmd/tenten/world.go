package main

import (
	"log/slog"
	"time"

	"github.com/plus3/tenten/debugui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

// world holds the entity storage and the two schedulers the host runs:
// update from ebiten.Game.Update and draw from ebiten.Game.Draw.
type world struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler

	play   *ecs.Singleton[Play]
	input  *ecs.Singleton[Input]
	screen *ecs.Singleton[Screen]
}

// newWorld creates the singletons, spawns the current tray as entities and
// registers the input systems followed by the control and tray systems.
// Rendering is left to the caller so tests can drive the world without a
// window.
func newWorld(s *game.Session, logger *slog.Logger, inputs ...ecs.System) *world {
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &world{
		storage: storage,
		update:  ecs.NewScheduler(storage),
		draw:    ecs.NewScheduler(storage),
		play: ecs.NewSingleton(storage, Play{
			Session:  s,
			Layout:   layout{width: s.Width(), height: s.Height()},
			Logger:   logger,
			Now:      time.Now,
			Selected: -1,
		}),
		input:  ecs.NewSingleton[Input](storage),
		screen: ecs.NewSingleton[Screen](storage),
	}

	for _, piece := range s.Offered() {
		storage.Spawn(TrayPiece{Slot: piece.Slot, Piece: piece})
	}
	s.SetListener(w.play.Get())

	for _, system := range inputs {
		w.update.Register(system)
	}
	w.update.Register(&ControlSystem{})
	w.update.Register(&TraySystem{})
	return w
}

// withDebugPanels spawns the inspector panels and adds the ImguiSystem. The
// session's events are forwarded to both Play and the event log panel.
func (w *world) withDebugPanels(palette debugui.Palette, heuristic spawn.Heuristic) {
	play := w.play.Get()
	events := debugui.SpawnSessionPanels(w.storage, debugui.SessionPanels{
		Session:   play.Session,
		Palette:   palette,
		Heuristic: heuristic,
		Scheduler: w.update,
		Logger:    play.Logger,
	})
	play.Session.SetListener(game.ListenerFunc(func(e game.Event) {
		play.OnEvent(e)
		events.OnEvent(e)
	}))
	w.update.Register(&debugui.ImguiSystem{})
}
