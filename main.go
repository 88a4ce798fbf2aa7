package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/abyss/config"
	"github.com/pthm-cable/abyss/game"
	"github.com/pthm-cable/abyss/stream"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	dbPath := flag.String("db", "", "SQLite file collecting runs (empty = disabled)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	workers := flag.Int("workers", 0, "Steering workers (0 = use config)")
	autospawn := flag.Bool("autospawn", true, "Drive spawns from a scripted cursor")
	addr := flag.String("addr", "", "Serve frames to renderers on this address, paced in real time (empty = headless)")
	frameEvery := flag.Int("frame-every", 2, "Ticks between broadcast frames")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g := game.NewGameWithOptions(game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		DBPath:    *dbPath,
		Workers:   *workers,
	})
	defer g.Unload()

	var spawner *game.AutoSpawner
	if *autospawn {
		spawner = game.NewAutoSpawner(cfg.AutoSpawn, rngSeed+1)
	}

	var hub *stream.Hub
	var pace *time.Ticker
	if *addr != "" {
		hub = stream.NewHub()
		go hub.Run(ctx)

		server := &http.Server{Addr: *addr, Handler: stream.Routes(hub)}
		go func() {
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("stream server failed", "error", err)
				stop()
			}
		}()
		defer server.Close()

		pace = time.NewTicker(time.Duration(cfg.Physics.DT * float64(time.Second)))
		defer pace.Stop()
	}
	if *frameEvery < 1 {
		*frameEvery = 1
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", *maxTicks,
		"autospawn", *autospawn,
		"addr", *addr,
	)

	for {
		if pace != nil {
			select {
			case <-pace.C:
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			slog.Info("shutting down", "tick", g.TickCount())
			return
		}

		if hub != nil {
			stream.ApplyCommands(g, hub.Commands())
		}
		if spawner != nil {
			spawner.Step(g)
		}
		g.Tick(cfg.Physics.DT)

		if hub != nil && int(g.TickCount())%*frameEvery == 0 {
			data, err := stream.EncodeFrame(stream.NewFrame(g))
			if err != nil {
				slog.Error("failed to encode frame", "error", err)
			} else {
				hub.Broadcast(data)
			}
		}

		if *maxTicks > 0 && int(g.TickCount()) >= *maxTicks {
			slog.Info("max ticks reached",
				"tick", g.TickCount(),
				"phase", g.Phase().String(),
				"population", g.Population(),
			)
			return
		}
	}
}
