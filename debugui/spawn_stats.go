package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tenten/ecs"
	"github.com/plus3/tenten/spawn"
)

// SpawnStats shows the engine's per-strategy timings next to a frame time graph.
type SpawnStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewSpawnStats creates a panel that keeps the last historyFrames frame times.
func NewSpawnStats(historyFrames int) *SpawnStats {
	return &SpawnStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render draws the panel. systems may be nil when no scheduler is attached.
func (ss *SpawnStats) Render(engine *spawn.Engine, last spawn.Generation, systems []ecs.SystemStats, deltaTime float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Spawn Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ss.frameHistory[ss.frameIndex] = deltaTime * 1000.0
	ss.frameIndex = (ss.frameIndex + 1) % ss.historyFrames

	stats := engine.GetStats()

	imgui.Text(fmt.Sprintf("Trios generated: %d", stats.Generated))
	imgui.Text(fmt.Sprintf("Last trio: %s", last))
	imgui.Text(fmt.Sprintf("Advanced fallbacks: %d", stats.Fallbacks))
	imgui.Text(fmt.Sprintf("Candidates: %d  Trials: %d", stats.Candidates, stats.Trials))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("StrategyTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Strategy")
		imgui.TableSetupColumn("Calls")
		imgui.TableSetupColumn("Min")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range []spawn.StrategyStats{stats.Random, stats.Advanced} {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.Calls))
			imgui.TableNextColumn()
			imgui.Text(s.MinDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}

		imgui.EndTable()
	}

	var avgFrameTime float32
	for _, ft := range ss.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ss.historyFrames)

	imgui.Separator()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ss.frameHistory[0], int32(len(ss.frameHistory)))

	if len(systems) > 0 && imgui.TreeNodeStr("System Timings") {
		if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, s := range systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
