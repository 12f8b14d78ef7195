package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-link-shortener/config"
	"go-link-shortener/server"
	"go-link-shortener/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const storeConnectTimeout = 30 * time.Second

var (
	logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger   *zap.Logger
)

func init() {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = logLevel

	var err error
	logger, err = zapConfig.Build()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
}

func main() {
	defer logger.Sync()

	envFile := flag.String("env-file", "", "Path to a .env file (defaults to ./.env)")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		logger.Fatal("FATAL: invalid configuration", zap.Error(err))
	}
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Warn("Unknown LOG_LEVEL, keeping info", zap.String("level", cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting link shortener...", zap.Int("port", cfg.ServerPort))

	connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	store, err := storage.Open(connectCtx, cfg.StoreURI, cfg.DatabaseName, logger)
	cancel()
	if err != nil {
		logger.Fatal("FATAL: could not connect to link store", zap.Error(err))
	}

	runErr := server.Run(ctx, logger, cfg, store)

	closeCtx, cancelClose := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelClose()
	if err := store.Close(closeCtx); err != nil {
		logger.Warn("Error closing link store", zap.Error(err))
	}

	if runErr != nil {
		logger.Fatal("Application error", zap.Error(runErr))
	}
	logger.Info("Link shortener stopped.")
}
