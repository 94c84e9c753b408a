package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/agent"
	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/engine"
	"github.com/alexeagleson/goblin-boys/internal/infrastructure/storage"
	"github.com/alexeagleson/goblin-boys/internal/network"
	"github.com/alexeagleson/goblin-boys/internal/observe"
	"github.com/alexeagleson/goblin-boys/internal/server"
	"github.com/alexeagleson/goblin-boys/internal/version"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	botInterval       = 400 * time.Millisecond
	journalFlushEvery = time.Second
)

func init() {
	logger.Init()
}

func main() {
	var (
		configPath string
		seed       int64
		bots       int
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML config (defaults are used when empty)")
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps the config value or a random one)")
	flag.IntVar(&bots, "bots", -1, "Number of headless bots (-1 keeps the config value)")
	flag.Parse()

	if err := run(configPath, seed, bots); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(configPath string, seed int64, bots int) error {
	logger.Log.Info("Starting Goblin Boys...")
	logger.Log.Info(version.String())

	cfg, err := loadConfig(configPath, seed, bots)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"seed":      cfg.Seed,
		"tick_rate": cfg.TickRate,
		"port":      cfg.Port,
		"bots":      cfg.Bots,
	}).Info("Config loaded")

	tables, err := data.Load()
	if err != nil {
		return fmt.Errorf("load data tables: %w", err)
	}

	hub := network.NewBroadcaster()
	opts := []engine.Option{engine.WithSink(hub)}
	drops := map[string]func() int64{"hub": hub.Dropped}

	var moveLog *storage.MoveLog
	if cfg.DatabasePath != "" {
		if moveLog, err = storage.OpenMoveLog(cfg.DatabasePath); err != nil {
			return err
		}
		opts = append(opts, engine.WithMoveRecorder(moveLog))
		drops["move_log"] = moveLog.Dropped
	}

	var journal *storage.Journal
	if cfg.JournalDir != "" {
		journal = storage.NewJournal(cfg.JournalDir)
		opts = append(opts, engine.WithJournal(journal))
		drops["journal"] = journal.Dropped
	}

	var provider *observe.Provider
	if cfg.MetricsEnabled {
		if provider, err = observe.InitProvider(observe.ProviderConfig{ServiceVersion: version.Info().Commit}); err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				logger.Log.WithError(err).Warn("Metrics shutdown failed")
			}
		}()
		metrics, err := observe.NewMetrics(provider.MeterProvider)
		if err != nil {
			return fmt.Errorf("create metrics: %w", err)
		}
		if err := metrics.ObserveDrops(drops); err != nil {
			return err
		}
		opts = append(opts, engine.WithMetrics(metrics))
	}

	game, err := engine.NewService(cfg, tables, opts...)
	if err != nil {
		return err
	}

	srv := server.New(game, hub, cfg.Port)
	if provider != nil {
		srv.Metrics = provider.Handler
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return game.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	if moveLog != nil {
		g.Go(func() error { return moveLog.Run(gctx, game.ReportMoveCount) })
	}
	if journal != nil {
		g.Go(func() error { return journal.Run(gctx, journalFlushEvery) })
	}
	for _, bot := range newBots(cfg, tables, hub, game) {
		bot := bot
		g.Go(func() error { return bot.Run(gctx) })
	}

	err = g.Wait()
	logger.Log.Info("Shutting down... Done.")
	return err
}

func loadConfig(path string, seed int64, bots int) (engine.Config, error) {
	cfg := engine.NewConfig()
	if path != "" {
		var err error
		if cfg, err = engine.LoadConfig(path); err != nil {
			return engine.Config{}, err
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if bots >= 0 {
		cfg.Bots = bots
	}
	if port := os.Getenv("GB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return engine.Config{}, fmt.Errorf("GB_PORT: %w", err)
		}
		cfg.Port = p
	}
	return cfg, cfg.Validate()
}

// newBots раздает ботам облики по кругу, сиды идут от мастер-сида
func newBots(cfg engine.Config, tables *data.Tables, hub *network.Broadcaster, game agent.Game) []*agent.Bot {
	if cfg.Bots == 0 {
		return nil
	}

	appearances := make([]string, 0, len(tables.Players))
	for name := range tables.Players {
		appearances = append(appearances, name)
	}
	sort.Strings(appearances)

	enemyTextures := make([]string, 0, len(tables.Enemies))
	for _, e := range tables.Enemies {
		enemyTextures = append(enemyTextures, string(e.Texture))
	}

	out := make([]*agent.Bot, 0, cfg.Bots)
	for i := 0; i < cfg.Bots; i++ {
		appearance := appearances[i%len(appearances)]
		out = append(out, agent.NewBot(hub, game, appearance, enemyTextures, cfg.Seed+int64(i)+1, botInterval))
	}
	return out
}
