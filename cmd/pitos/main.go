package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pitos/internal/config"
	"pitos/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "pitos",
		Short:         "PITOS uniformity test for samples on [0,1]",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid by now; later failures are not usage errors
			cmd.SilenceUsage = true

			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			*cfg = *loaded
			logging.Init(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")

	rootCmd.AddCommand(
		newRunCmd(cfg),
		newServeCmd(cfg),
		newMigrateCmd(cfg),
	)
	return rootCmd
}
