// Package telemetry provides population statistics, phase event records,
// performance timing and CSV output for the simulation.
package telemetry

import "log/slog"

// PhaseEvent records one phase transition.
type PhaseEvent struct {
	Tick       int32  `csv:"tick"`
	From       string `csv:"from"`
	To         string `csv:"to"`
	Reason     string `csv:"reason"`
	Population int    `csv:"population"`
}

// NewPhaseEvent creates a phase transition event.
func NewPhaseEvent(tick int32, from, to, reason string, population int) PhaseEvent {
	return PhaseEvent{
		Tick:       tick,
		From:       from,
		To:         to,
		Reason:     reason,
		Population: population,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (e PhaseEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(e.Tick)),
		slog.String("from", e.From),
		slog.String("to", e.To),
		slog.String("reason", e.Reason),
		slog.Int("population", e.Population),
	)
}
