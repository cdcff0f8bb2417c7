package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tenten/game"
)

type LogEntry struct {
	At   time.Time
	Kind string
	Text string
}

// EventLog is a game.Listener that keeps the most recent session events in a
// ring buffer and renders them in a window.
type EventLog struct {
	entries []LogEntry
	next    int
	full    bool
	filter  string
	now     func() time.Time
}

func NewEventLog(capacity int) *EventLog {
	return &EventLog{
		entries: make([]LogEntry, capacity),
		now:     time.Now,
	}
}

func (l *EventLog) OnEvent(e game.Event) {
	kind, text := Describe(e)
	l.entries[l.next] = LogEntry{At: l.now(), Kind: kind, Text: text}
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Entries returns the retained entries, oldest first.
func (l *EventLog) Entries() []LogEntry {
	if !l.full {
		return append([]LogEntry(nil), l.entries[:l.next]...)
	}
	out := make([]LogEntry, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	return append(out, l.entries[:l.next]...)
}

func (l *EventLog) Clear() {
	clear(l.entries)
	l.next = 0
	l.full = false
}

// Describe renders an event as a short kind and a one-line description.
func Describe(e game.Event) (kind, text string) {
	switch e := e.(type) {
	case game.GridChanged:
		occupied := 0
		for _, c := range e.Snapshot {
			if !c.IsEmpty() {
				occupied++
			}
		}
		return "grid", fmt.Sprintf("%d cells occupied", occupied)
	case game.LinesCleared:
		return "clear", fmt.Sprintf("rows %v cols %v", e.Result.Rows, e.Result.Cols)
	case game.PiecePlaced:
		return "place", fmt.Sprintf("slot %d %s at (%d,%d)", e.Piece.Slot, e.Piece.Shape.Name(), e.Origin.X, e.Origin.Y)
	case game.TrayRefilled:
		names := make([]string, len(e.Pieces))
		for i, p := range e.Pieces {
			names[i] = p.Shape.Name()
		}
		return "spawn", fmt.Sprintf("%s [%s]", strings.Join(names, " "), e.Generation)
	case game.GameLost:
		return "lost", "game over at " + e.Deadline.Format("15:04:05.000")
	}
	return "unknown", fmt.Sprintf("%T", e)
}

func (l *EventLog) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	if !imgui.BeginV("Event Log", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter kind...", &l.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		l.Clear()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EventTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Time")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Event")
		imgui.TableHeadersRow()

		entries := l.Entries()
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			if l.filter != "" && !strings.Contains(entry.Kind, strings.ToLower(l.filter)) {
				continue
			}
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(entry.At.Format("15:04:05.000"))
			imgui.TableNextColumn()
			imgui.Text(entry.Kind)
			imgui.TableNextColumn()
			imgui.Text(entry.Text)
		}

		imgui.EndTable()
	}

	imgui.End()
}
