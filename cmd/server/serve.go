package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workouthub/internal/api"
	"alcyxob/workouthub/internal/logging"
	"alcyxob/workouthub/internal/service"
	"alcyxob/workouthub/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Info().Msg("Starting workouthub server...")

	// --- Database Connection ---
	store, err := openStore(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close store")
		}
	}()
	logging.Info().Str("driver", cfg.Database.Driver).Msg("Database ready")

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(cmd.Context(), cfg.S3)
		if err != nil {
			return err
		}
	} else {
		logging.Warn().Msg("s3.bucket_name not set, exercise video routes are disabled")
	}

	// --- Initialize Services ---
	var tokens service.TokenService
	if cfg.JWT.Enabled() {
		tokens, err = service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
		if err != nil {
			return err
		}
	}
	services := api.Services{
		Exercises:   service.NewExerciseService(store.Exercises(), fileStorage),
		Workouts:    service.NewWorkoutService(store.Workouts(), store.WorkoutExercises(), store.Exercises()),
		Plans:       service.NewPlanService(store.WorkoutPlans(), store.ScheduledWorkouts(), store.Workouts()),
		Tokens:      tokens,
		RequireAuth: cfg.JWT.Required,
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	if err := api.SetupRoutes(router, services); err != nil {
		return err
	}

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Address).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}
	logging.Info().Msg("Shutting down server...")

	// The server has 5 seconds to finish in-flight requests.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return err
	}

	logging.Info().Msg("Server exiting.")
	return nil
}
