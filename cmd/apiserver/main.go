// Command apiserver runs the InfringeScope HTTP API.  It is the container
// entry point; operators wanting subcommands use cmd/infringescope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/InfringeScope/internal/app"
	"github.com/turtacn/InfringeScope/internal/config"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	noSeed := flag.Bool("no-seed", false, "skip the startup seed load")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *noSeed {
		cfg.Seed.Enabled = false
	}

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	logger.Info("Starting InfringeScope API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	if err := run(cfg, *configPath, logger); err != nil {
		logger.Error("API server exited with error", logging.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("API server stopped")
}

func run(cfg *config.Config, configPath string, logger logging.Logger) error {
	a, err := app.New(cfg, app.Options{Version: version, Logger: logger})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if configPath != "" {
		app.WatchLogLevel(configPath, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}

//Personal.AI order the ending
