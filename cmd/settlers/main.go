package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexharbor/settlers-server-go/internal/config"
	"github.com/hexharbor/settlers-server-go/internal/driver"
	"github.com/hexharbor/settlers-server-go/internal/game"
	"github.com/hexharbor/settlers-server-go/internal/game/dice"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev" // set via ldflags during build

func main() {
	flags := pflag.NewFlagSet("settlers", pflag.ExitOnError)
	configPath := flags.String("config", "config/config.yaml", "path to configuration file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "console", "log format: console or json")
	flags.Int("players", game.DefaultSettings().Players, "number of players")
	flags.Int64("seed", 0, "random seed, 0 for a fresh one")
	flags.Int("victory-points", game.DefaultSettings().VictoryPoints, "points needed to win")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
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

	logger.Info("starting settlers",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	settings, err := cfg.Game.Settings()
	if err != nil {
		logger.Fatal("invalid game settings", zap.Error(err))
	}
	b, err := cfg.Game.Board()
	if err != nil {
		logger.Fatal("invalid board", zap.Error(err))
	}

	roller, err := dice.NewSource(settings.Seed)
	if err != nil {
		logger.Fatal("failed to seed dice", zap.Error(err))
	}
	if settings.Seed == 0 {
		settings.Seed = roller.Seed()
	}
	logger.Info("dice seeded", zap.Int64("seed", roller.Seed()))

	manager := game.NewManager(logger)
	gameID, err := manager.Create("", settings, b)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := driver.New(manager, gameID, roller, os.Stdout, logger)
	if err := d.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Error("command loop failed", zap.Error(err))
	}

	if history, err := manager.History(gameID); err == nil {
		logger.Info("game closed",
			zap.String("game_id", gameID),
			zap.Int("recorded_views", history.Size()),
		)
	}
	_ = manager.End(gameID)
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
	// stdout carries the game transcript.
	zapCfg.OutputPaths = []string{"stderr"}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
