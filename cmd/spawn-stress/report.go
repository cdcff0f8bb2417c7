package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tenten/spawn"
)

type Report struct {
	// Configuration
	Games     int
	Seed      uint64
	Mode      string
	Board     string
	Shapes    int
	MaxMoves  int
	Deadline  time.Duration
	Completed int

	// Results
	TotalMoves     int64
	TotalLines     int64
	TotalTrios     int64
	Lost           int
	TotalTime      time.Duration
	MoveTime       Stats
	Spawn          spawn.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// addSpawn folds one engine's statistics into the report.
func (r *Report) addSpawn(s *spawn.Stats) {
	r.Spawn.Generated += s.Generated
	r.Spawn.Fallbacks += s.Fallbacks
	r.Spawn.Trials += s.Trials
	r.Spawn.Candidates += s.Candidates
	mergeStrategy(&r.Spawn.Random, s.Random)
	mergeStrategy(&r.Spawn.Advanced, s.Advanced)
}

func mergeStrategy(dst *spawn.StrategyStats, src spawn.StrategyStats) {
	if src.Calls == 0 {
		return
	}
	if dst.Calls == 0 || src.MinDuration < dst.MinDuration {
		dst.MinDuration = src.MinDuration
	}
	dst.Name = src.Name
	dst.MaxDuration = max(dst.MaxDuration, src.MaxDuration)
	dst.Calls += src.Calls
	dst.TotalDuration += src.TotalDuration
	dst.LastDuration = src.LastDuration
	dst.AvgDuration = dst.TotalDuration / time.Duration(dst.Calls)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Spawn Stress Test Report

## Test Configuration
- **Games:** {{.Completed}} of {{.Games}} (time limit {{.Deadline}})
- **Base Seed:** {{.Seed}}
- **Spawn Mode:** {{.Mode}}
- **Board:** {{.Board}} with {{.Shapes}} shapes
- **Move Limit:** {{.MaxMoves}} per game

## Game Results
- **Games Lost:** {{.Lost}}
- **Total Moves:** {{.TotalMoves}} ({{per .TotalMoves .Completed}} per game)
- **Lines Cleared:** {{.TotalLines}} ({{per .TotalLines .Completed}} per game)
- **Trios Spawned:** {{.TotalTrios}}
- **Total Test Time:** {{.TotalTime}}
- **Move Time (place + refill):**
  - **Avg:** {{.MoveTime.Avg}}
  - **Min:** {{.MoveTime.Min}}
  - **Max:** {{.MoveTime.Max}}

## Spawn Engine
| Strategy | Calls | Min | Avg | Max |
|----------|-------|-----|-----|-----|
{{- range (list .Spawn.Random .Spawn.Advanced)}}
| {{if .Name}}{{.Name}}{{else}}-{{end}} | {{.Calls}} | {{.MinDuration}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

- **Advanced Fallbacks:** {{.Spawn.Fallbacks}}
- **Candidates Enumerated:** {{.Spawn.Candidates}}
- **Trials Sampled:** {{.Spawn.Trials}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"per": func(total int64, games int) string {
			if games == 0 {
				return "0.0"
			}
			return fmt.Sprintf("%.1f", float64(total)/float64(games))
		},
		"list": func(s ...spawn.StrategyStats) []spawn.StrategyStats {
			return s
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
