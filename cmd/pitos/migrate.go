package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"pitos/adapters/postgres"
	"pitos/internal/config"
	"pitos/internal/migration"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the run ledger schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = cfg.Database.URL
			}
			if databaseURL == "" {
				return fmt.Errorf("no database URL: set PITOS_DATABASE_URL or --database-url")
			}

			db, err := postgres.Open(cmd.Context(), databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.NewRunner()
			if err := runner.Run(cmd.Context(), db); err != nil {
				return err
			}
			slog.Info("migrations applied", "schema_version", runner.Version())
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL, overrides PITOS_DATABASE_URL")
	return cmd
}
