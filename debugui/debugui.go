// Package debugui provides Dear ImGui panels for inspecting a running game
// session: the board, the spawn engine and the session's event stream.
//
// Panels are ImguiItem entities drawn by ImguiSystem, so a host that runs an
// ecs.Scheduler between the backend's BeginFrame and EndFrame gets them for
// free.
package debugui

import (
	"image/color"
	"log/slog"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

// ImguiItem is a component holding a Dear ImGui render function.
type ImguiItem struct {
	Render func(frame *ecs.UpdateFrame)
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Input systems should ignore the player while it is.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Captured reports whether ImGui wants either input device.
func (s *ImguiInputState) Captured() bool {
	return s != nil && (s.WantCaptureMouse || s.WantCaptureKeyboard)
}

// ImguiSystem draws every ImguiItem entity once per frame and refreshes the
// ImguiInputState singleton. The scheduler running it must sit between the
// backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		render := item.Render
		frame.Commands.Defer(func() { render(frame) })
	}
}

// RegisterComponents registers the package's components with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Palette maps a color tag to its display color.
type Palette func(board.Color) color.RGBA

// SessionPanels configures SpawnSessionPanels.
type SessionPanels struct {
	Session   *game.Session
	Palette   Palette
	Heuristic spawn.Heuristic
	// Scheduler, when set, has its per-system timings shown in the stats panel.
	Scheduler *ecs.Scheduler
	Logger    *slog.Logger
}

// SpawnSessionPanels spawns the board inspector, spawn stats and event log
// panels into storage and creates the ImguiInputState singleton. The returned
// EventLog must be fed the session's events.
func SpawnSessionPanels(storage *ecs.Storage, p SessionPanels) *EventLog {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := p.Session

	ecs.NewSingleton[ImguiInputState](storage)

	events := NewEventLog(200)
	inspector := NewBoardInspector(p.Palette, p.Heuristic)
	stats := NewSpawnStats(120)

	storage.Spawn(ImguiItem{Render: func(*ecs.UpdateFrame) {
		if inspector.Render(s) {
			if err := s.Reset(); err != nil {
				logger.Error("reset failed", "error", err)
			}
		}
	}})
	storage.Spawn(ImguiItem{Render: func(frame *ecs.UpdateFrame) {
		var systems []ecs.SystemStats
		if p.Scheduler != nil {
			systems = p.Scheduler.GetStats().Systems
		}
		stats.Render(s.Engine(), s.Generation(), systems, float32(frame.DeltaTime))
	}})
	storage.Spawn(ImguiItem{Render: func(*ecs.UpdateFrame) { events.Render() }})

	return events
}

func vec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}
