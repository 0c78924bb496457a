package main

import (
	"context"
	"fmt"
	"os"

	"alcyxob/workouthub/internal/config"
	"alcyxob/workouthub/internal/logging"
	"alcyxob/workouthub/internal/repository"
	"alcyxob/workouthub/internal/repository/mongo"
	"alcyxob/workouthub/internal/repository/sqlite"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "workouthub",
	Short: "Exercise, workout and workout plan API server",
	Long: `workouthub serves a REST API for an exercise library, workouts built
from it, and workout plans that repeat workouts on an RRULE schedule.

Without a subcommand it runs "serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

// loadConfig reads configuration and initialises the global logger from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}

// openStore opens the configured backend. Both backends create their schema
// and apply the default exercise seed on open.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (repository.Store, error) {
	if cfg.Driver == config.DriverMongo {
		store, err := mongo.OpenStore(ctx, cfg.URI, cfg.Name)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := sqlite.OpenStore(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return store, nil
}
