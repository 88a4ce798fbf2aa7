package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.store.InsertWindow(stats); err != nil {
		slog.Error("failed to store window", "error", err)
	}
}

// sample collects the population distributions for a stats window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		Phase:      g.phase.String(),
		Energies:   make([]float64, 0, len(g.order)),
		Segments:   make([]float64, 0, len(g.order)),
		Heads:      make([]r2.Vec, 0, len(g.order)),
		Velocities: make([]r2.Vec, 0, len(g.order)),
		Colors:     make(map[string]int, 3),
		IndexDepth: g.index.Depth(),
		IndexNodes: g.index.Nodes(),
	}

	query := g.creatureFilter.Query()
	for query.Next() {
		body, motion, meta, c := query.Get()

		s.Energies = append(s.Energies, meta.Normalized())
		s.Segments = append(s.Segments, float64(body.NumSegments()))
		s.Heads = append(s.Heads, body.Head())
		s.Velocities = append(s.Velocities, motion.Velocity)
		s.Colors[c.Color.String()]++
	}

	return s
}
