package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
)

// PieceSummary describes one tray slot and how many origins its piece fits.
type PieceSummary struct {
	Slot    int
	Empty   bool
	Shape   string
	Size    int
	Color   board.Color
	Origins int
}

// BoardSummary is what the inspector shows about a session.
type BoardSummary struct {
	Width     int
	Height    int
	Occupied  int
	FillRatio float64
	// NearRows and NearCols are lines missing exactly one cell.
	NearRows []int
	NearCols []int
	Advanced bool
	Lost     bool
	Pieces   []PieceSummary
}

// Summarize collects the inspector's view of s.
func Summarize(s *game.Session, heuristic spawn.Heuristic) BoardSummary {
	g := s.Grid()
	w, h := g.Width(), g.Height()

	sum := BoardSummary{
		Width:     w,
		Height:    h,
		Occupied:  g.OccupiedCount(),
		FillRatio: float64(g.OccupiedCount()) / float64(w*h),
		Advanced:  heuristic.ShouldUseAdvanced(g),
		Lost:      s.IsLost(),
	}

	for y := 0; y < h; y++ {
		empty := 0
		for x := 0; x < w; x++ {
			if g.At(x, y).IsEmpty() {
				empty++
			}
		}
		if empty == 1 {
			sum.NearRows = append(sum.NearRows, y)
		}
	}
	for x := 0; x < w; x++ {
		empty := 0
		for y := 0; y < h; y++ {
			if g.At(x, y).IsEmpty() {
				empty++
			}
		}
		if empty == 1 {
			sum.NearCols = append(sum.NearCols, x)
		}
	}

	for slot := 0; slot < spawn.TrioSize; slot++ {
		piece, err := s.Slot(slot)
		if err != nil {
			sum.Pieces = append(sum.Pieces, PieceSummary{Slot: slot, Empty: true})
			continue
		}
		ps := PieceSummary{
			Slot:  slot,
			Shape: piece.Shape.Name(),
			Size:  piece.Shape.Size(),
			Color: piece.Color,
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if board.CanPlace(g, piece.Shape, x, y) {
					ps.Origins++
				}
			}
		}
		sum.Pieces = append(sum.Pieces, ps)
	}

	return sum
}

// BoardInspector draws the grid and the offered pieces.
type BoardInspector struct {
	palette   Palette
	heuristic spawn.Heuristic
	cellSize  float32
}

func NewBoardInspector(palette Palette, heuristic spawn.Heuristic) *BoardInspector {
	return &BoardInspector{palette: palette, heuristic: heuristic, cellSize: 18}
}

// Render draws the inspector window and reports whether Reset was clicked.
func (bi *BoardInspector) Render(s *game.Session) bool {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 460), imgui.CondOnce)
	if !imgui.BeginV("Board Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return false
	}

	sum := Summarize(s, bi.heuristic)

	imgui.Text(fmt.Sprintf("Grid: %dx%d", sum.Width, sum.Height))
	imgui.Text(fmt.Sprintf("Occupied: %d (%.0f%%)", sum.Occupied, sum.FillRatio*100))
	imgui.Text(fmt.Sprintf("Near-full rows: %s", joinInts(sum.NearRows)))
	imgui.Text(fmt.Sprintf("Near-full cols: %s", joinInts(sum.NearCols)))
	if sum.Advanced {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "Next spawn: advanced")
	} else {
		imgui.Text("Next spawn: random")
	}
	if sum.Lost {
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "NO MOVES LEFT")
	}

	imgui.Separator()
	bi.drawGrid(s)

	imgui.Separator()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("TrayTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Color")
		imgui.TableSetupColumn("Fits")
		imgui.TableHeadersRow()

		for _, p := range sum.Pieces {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.Slot))
			imgui.TableNextColumn()
			if p.Empty {
				imgui.Text("-")
				imgui.TableNextColumn()
				imgui.TableNextColumn()
				continue
			}
			imgui.Text(fmt.Sprintf("%s (%d)", p.Shape, p.Size))
			imgui.TableNextColumn()
			imgui.TextColored(vec4(bi.palette(p.Color)), fmt.Sprintf("#%d", p.Color))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", p.Origins))
		}

		imgui.EndTable()
	}

	reset := imgui.Button("Reset Session")
	imgui.End()
	return reset
}

func (bi *BoardInspector) drawGrid(s *game.Session) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.25, 0.25, 0.25, 1.0))
	gap := float32(2)

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			col := empty
			if c, ok := s.At(x, y).Color(); ok {
				col = imgui.ColorU32Vec4(vec4(bi.palette(c)))
			}
			minX := origin.X + float32(x)*(bi.cellSize+gap)
			minY := origin.Y + float32(y)*(bi.cellSize+gap)
			drawList.AddRectFilled(imgui.NewVec2(minX, minY), imgui.NewVec2(minX+bi.cellSize, minY+bi.cellSize), col)
		}
	}

	imgui.Dummy(imgui.NewVec2(
		float32(s.Width())*(bi.cellSize+gap),
		float32(s.Height())*(bi.cellSize+gap),
	))
}

func joinInts(xs []int) string {
	if len(xs) == 0 {
		return "none"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ", ")
}
