package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartStage(StageIndex)
		time.Sleep(100 * time.Microsecond)
		pc.StartStage(StageSteering)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.StageAvg) == 0 {
		t.Error("expected stage averages to be populated")
	}

	if _, ok := stats.StageAvg[StageIndex]; !ok {
		t.Error("expected spatial_index stage to be tracked")
	}

	if _, ok := stats.StageAvg[StageSteering]; !ok {
		t.Error("expected steering stage to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartStage(StageIndex)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_StagePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven stage durations
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartStage("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartStage("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.StagePct["fast"]
	slowPct := stats.StagePct["slow"]

	// Slow stage should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow stage (%v%%) > fast stage (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.StageAvg == nil {
		t.Error("expected non-nil StageAvg map")
	}

	if stats.StagePct == nil {
		t.Error("expected non-nil StagePct map")
	}
}
