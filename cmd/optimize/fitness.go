package main

import (
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/abyss/config"
	"github.com/pthm-cable/abyss/game"
	"github.com/pthm-cable/abyss/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params       *ParamVector
	maxTicks     int32
	seeds        []int64
	baseConfig   *config.Config
	targetSpread float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetSpread float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		maxTicks:     maxTicks,
		seeds:        seeds,
		baseConfig:   baseCfg,
		targetSpread: targetSpread,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean quality across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runSimulation(x, s)
			qualities[idx] = computeQuality(windows, fe.targetSpread)
		}(i, seed)
	}
	wg.Wait()

	quality := stat.Mean(qualities, nil)

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return -quality
}

// runSimulation executes a single headless run and returns its stats windows.
// Each seed gets one steering worker since seeds already run concurrently.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Config:  cfg,
		Seed:    seed,
		Workers: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	spawner := game.NewAutoSpawner(cfg.AutoSpawn, seed+1)
	for g.TickCount() < fe.maxTicks {
		spawner.Step(g)
		g.Tick(cfg.Physics.DT)
	}
	return windows
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Palette = slices.Clone(fe.baseConfig.Palette)
	cfg.Derived.PaletteHex = slices.Clone(fe.baseConfig.Derived.PaletteHex)
	return &cfg
}

const (
	qualityWarmupWindows = 2 // skip first N windows while the flock forms
	qualityMinPop        = 5 // exclude windows too sparse to call a flock
)

// computeQuality scores flocking ∈ [0, 1] from window stats.
// A window scores its polarization, discounted as spread drifts from target.
func computeQuality(windows []telemetry.WindowStats, targetSpread float64) float64 {
	if len(windows) <= qualityWarmupWindows || targetSpread <= 0 {
		return 0
	}

	scores := make([]float64, 0, len(windows)-qualityWarmupWindows)
	for _, w := range windows[qualityWarmupWindows:] {
		if w.Population < qualityMinPop {
			continue
		}
		spreadErr := (w.Spread - targetSpread) / targetSpread
		scores = append(scores, w.Polarization*math.Exp(-spreadErr*spreadErr))
	}

	if len(scores) == 0 {
		return 0
	}
	return clamp01(stat.Mean(scores, nil))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
