package main

import (
	"alcyxob/workouthub/internal/logging"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and seed default exercises, then exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		logging.Info().Str("driver", cfg.Database.Driver).Msg("Database is up to date")
		return store.Close()
	},
}
