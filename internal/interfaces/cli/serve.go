package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeScope/internal/app"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
)

func newServeCmd() *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: "Connects to PostgreSQL (migrating when database.auto_migrate is set), loads the\n" +
			"seed fixtures when seed.enabled is set and serves the API until SIGINT or SIGTERM.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if noSeed {
				cliCtx.Config.Seed.Enabled = false
			}
			return runServe(cmd.Context(), cliCtx)
		},
	}
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "skip the startup seed load")
	return cmd
}

func runServe(ctx context.Context, cliCtx *CLIContext) error {
	logger, err := app.NewLogger(cliCtx.Config.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	a, err := app.New(cliCtx.Config, app.Options{Version: Version, Logger: logger})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if cliCtx.ConfigPath != "" {
		app.WatchLogLevel(cliCtx.ConfigPath, logger)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}

//Personal.AI order the ending
