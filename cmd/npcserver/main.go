package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/config"
	"github.com/udisondev/npcwarden/internal/db"
	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/model"
	"github.com/udisondev/npcwarden/internal/spawn"
	"github.com/udisondev/npcwarden/internal/world"
)

const (
	ConfigPath    = "config/npcserver.yaml"
	statsInterval = 30 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("NPCWARDEN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(cfg.AI.DebugLogging || logLevel == slog.LevelDebug)

	slog.Info("npcwarden starting", "config", cfgPath, "log_level", cfg.LogLevel)

	// World
	zones, err := cfg.World.BuildZones()
	if err != nil {
		return fmt.Errorf("building zones: %w", err)
	}
	w := world.New(cfg.World.WorldConfig(cfg.AI.SenseRange), cfg.World.BuildGeo(), zones)
	slog.Info("world initialized",
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"walls", len(cfg.World.Walls),
		"safe_zones", zones.Count())

	if err := spawnPlayers(w, cfg.Players); err != nil {
		return err
	}

	// Hit journal, persisted when the database is enabled
	var store combat.Store
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		store = db.NewHitRepository(database.Pool())
	} else {
		slog.Info("database disabled, hits are only counted")
	}
	journal := combat.NewJournal(store, cfg.Journal.Options())

	// Controllers
	tickMgr := ai.NewTickManager(cfg.AI.SlowTick, cfg.AI.FastTick)
	registry := spawn.NewRegistry(w, tickMgr, cfg.AI.DedupRadius,
		spawn.DefaultArchetypes(w.Host(journal), cfg.AI.Options())...)
	defer registry.Teardown()

	// Spawns
	points, err := cfg.SpawnPoints()
	if err != nil {
		return fmt.Errorf("loading spawns: %w", err)
	}
	spawner := spawn.NewSpawner(w, points)
	unsubscribe := w.Subscribe(spawner)
	defer unsubscribe()
	if err := spawner.SpawnAll(); err != nil {
		return fmt.Errorf("spawning npcs: %w", err)
	}

	registry.CatchUp()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting AI tick manager", "slow", cfg.AI.SlowTick, "fast", cfg.AI.FastTick)
		return ignoreCanceled(tickMgr.Start(gctx), "AI tick manager")
	})

	g.Go(func() error {
		return ignoreCanceled(w.Run(gctx, cfg.AI.FastTick), "world stepper")
	})

	g.Go(func() error {
		return ignoreCanceled(spawner.Respawns().Start(gctx), "respawn task manager")
	})

	g.Go(func() error {
		if err := journal.Run(gctx); err != nil {
			return fmt.Errorf("hit journal: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		reportStats(gctx, w, registry, journal)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("npcwarden stopped",
		"hits_recorded", journal.Recorded(),
		"hits_written", journal.Written(),
		"hits_dropped", journal.Dropped())
	return nil
}

// spawnPlayers places the configured demo players.
func spawnPlayers(w *world.World, players []config.PlayerConfig) error {
	for _, pc := range players {
		health := pc.MaxHealth
		if health <= 0 {
			health = 100
		}
		loc := model.NewLocation(pc.X, pc.Y, w.HeightAt(pc.X, pc.Y))
		p := model.NewPlayer(w.IDs().NextPlayerID(), pc.AccountID, pc.Name, loc, health)
		if err := w.Spawn(p); err != nil {
			return fmt.Errorf("spawning player %q: %w", pc.Name, err)
		}
		slog.Info("player placed", "name", pc.Name, "objectID", p.ObjectID(), "location", loc)
	}
	return nil
}

// reportStats logs world counters until ctx is canceled.
func reportStats(ctx context.Context, w *world.World, registry *spawn.Registry, journal *combat.Journal) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := w.Stats()
			slog.Info("npc stats",
				"controllers", registry.Count(),
				"guards", registry.CountKind(model.KindGuard),
				"roamers", registry.CountKind(model.KindRoamer),
				"objects", w.ObjectCount(),
				"damage", st.Damage,
				"kills", st.Kills,
				"hits_recorded", journal.Recorded(),
				"hits_dropped", journal.Dropped())
		}
	}
}

func ignoreCanceled(err error, name string) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
