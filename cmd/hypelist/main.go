package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PizzaHomicide/hypelist/internal/cli"
	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Initialise logger
	logger, err := log.New(log.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	// Set the default global logger
	log.SetDefaultLogger(logger)

	log.Info("Starting up Hypelist", "version", version.Version, "commit", version.Commit, "build_time", version.BuildTime,
		"backend", cfg.Backend.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.New(cfg).Run(ctx, os.Args); err != nil {
		log.Error("Command failed", "error", err)
		_, _ = fmt.Fprintf(os.Stderr, "hypelist: %v\n", err)
		return 1
	}

	log.Info("Hypelist shutting down.  Goodbye!")
	return 0
}
