package game

import (
	"github.com/pthm-cable/abyss/config"
	"github.com/pthm-cable/abyss/telemetry"
)

// Options configures a Game at construction.
type Options struct {
	Config        *config.Config // nil = config.Cfg()
	Seed          int64
	LogStats      bool
	OutputDir     string
	DBPath        string // SQLite run store; empty disables
	Workers       int    // Overrides parallel.workers when > 0
	StatsCallback func(telemetry.WindowStats)
}
