package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pitos/adapters/numeric"
	"pitos/adapters/postgres"
	"pitos/app"
	"pitos/internal/api"
	"pitos/internal/config"
	"pitos/internal/migration"
	"pitos/internal/pitos"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the test over HTTP",
		Long: `Start the HTTP API.

When PITOS_DATABASE_URL is set, completed runs are recorded in PostgreSQL and
exposed under /v1/runs. The schema is created on startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine := pitos.NewEngine(numeric.NewGonumDistributions(), pitos.WithWorkers(cfg.Engine.Workers))
			svc := app.NewPITOSService(engine, cfg.Engine.BatchWorkers, slog.Default())

			if cfg.Database.URL != "" {
				db, err := postgres.Open(ctx, cfg.Database.URL)
				if err != nil {
					return err
				}
				defer db.Close()

				runner := migration.NewRunner()
				if err := runner.Run(ctx, db); err != nil {
					return err
				}
				slog.Info("run ledger enabled", "schema_version", runner.Version())
				svc.WithRunRepository(postgres.NewRunRepository(db))
			}

			server := api.NewServer(svc, api.Config{
				Addr:         cfg.Server.Addr,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Runs:         svc.Runs(),
			})
			return server.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address, overrides PITOS_ADDR")
	return cmd
}
