package spawn

import "time"

// Stats summarises an engine's work since it was created.
type Stats struct {
	Generated  int64
	Random     StrategyStats
	Advanced   StrategyStats
	Fallbacks  int64
	Trials     int64
	Candidates int64
}

// StrategyStats provides timing statistics for one strategy.
type StrategyStats struct {
	Name          string
	Calls         int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type strategyStatsInternal struct {
	name          string
	calls         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func (s *strategyStatsInternal) record(d time.Duration) {
	s.calls++
	s.lastDuration = d
	s.totalDuration += d

	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

func (s *strategyStatsInternal) export() StrategyStats {
	out := StrategyStats{
		Name:          s.name,
		Calls:         s.calls,
		MaxDuration:   s.maxDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
	}
	if s.calls > 0 {
		out.MinDuration = s.minDuration
		out.AvgDuration = s.totalDuration / time.Duration(s.calls)
	}
	return out
}

type engineStats struct {
	random     strategyStatsInternal
	advanced   strategyStatsInternal
	fallbacks  int64
	trials     int64
	candidates int64
}

func (s *engineStats) init() {
	s.random = strategyStatsInternal{name: ModeRandom.String(), minDuration: time.Duration(1<<63 - 1)}
	s.advanced = strategyStatsInternal{name: ModeAdvanced.String(), minDuration: time.Duration(1<<63 - 1)}
}

// GetStats returns a snapshot of the engine's statistics.
func (e *Engine) GetStats() *Stats {
	random := e.stats.random.export()
	advanced := e.stats.advanced.export()

	return &Stats{
		Generated:  random.Calls + advanced.Calls,
		Random:     random,
		Advanced:   advanced,
		Fallbacks:  e.stats.fallbacks,
		Trials:     e.stats.trials,
		Candidates: e.stats.candidates,
	}
}
