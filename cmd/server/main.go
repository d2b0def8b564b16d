package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexcardgame/hexcard-server-go/internal/catalog"
	"github.com/hexcardgame/hexcard-server-go/internal/config"
	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"github.com/hexcardgame/hexcard-server-go/internal/game/watchers"
	"github.com/hexcardgame/hexcard-server-go/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting hexcard server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rng := newRand(cfg.Game.Seed)

	cat, err := loadCatalog(ctx, cfg.Catalog, rng, logger)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("definitions", cat.Len()),
	)

	dispatcher := events.NewDispatcher()
	registry := watchers.NewRegistry(dispatcher)
	defer registry.Close()

	journal := watchers.NewJournal(cfg.Server.JournalSize)
	registry.Add(journal)
	registry.Add(watchers.NewCardsDrawnWatcher())
	registry.Add(watchers.NewHandFullWatcher())
	for _, id := range []card.PlayerID{card.User, card.Ai} {
		registry.Add(watchers.NewCardsPlayedWatcher(id))
	}

	params := game.ParametersFromConfig(cfg.Game)
	starter := starterPolicy(cfg.Game.Starter, rng)

	manager := game.NewManager(dispatcher, func(d *events.Dispatcher, id string) *game.Game {
		return game.New(params, cat, d, logger,
			game.WithSessionID(id),
			game.WithRand(rng),
			game.WithStarter(starter),
		)
	}, logger)
	logger.Info("game manager initialized",
		zap.String("session_id", manager.Current().ID()),
		zap.Int("watchers", registry.Len()),
	)

	srv := server.New(cfg.Server, manager, journal, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("hexcard server stopped")
}

// newRand returns a PCG source seeded with seed, or with random state when
// seed is zero.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// loadCatalog reads the whole catalog once; games never query a database.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig, rng *rand.Rand, logger *zap.Logger) (*catalog.Static, error) {
	switch cfg.Source {
	case config.CatalogSourcePostgres:
		pool, err := catalog.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return catalog.LoadPostgres(ctx, pool, cfg.Deck, rng)
	case config.CatalogSourceSQLite:
		db, err := catalog.OpenSQLite(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return catalog.LoadSQLite(ctx, db, cfg.Deck, rng)
	default:
		return catalog.FromConfig(cfg, rng)
	}
}

func starterPolicy(name string, rng *rand.Rand) rules.StarterPolicy {
	switch name {
	case "user":
		return rules.FixedStarter(card.User)
	case "ai":
		return rules.FixedStarter(card.Ai)
	default:
		return rules.RandomStarter(rng)
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
