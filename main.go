package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pharmstore/m/internal/api"
	"pharmstore/m/internal/config"
	"pharmstore/m/internal/database"
	"pharmstore/m/internal/logging"
	"pharmstore/m/internal/metrics"
	"pharmstore/m/internal/migrations"
	"pharmstore/m/internal/repository"
	"pharmstore/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	rootCmd := &cobra.Command{
		Use:           "pharmacyd",
		Short:         "pharmacy inventory HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, logger)
		},
	}
	rootCmd.AddCommand(
		serveCommand(cfg, logger),
		migrateCommand(cfg, logger),
		seedCommand(cfg, logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("pharmacyd failed")
		stop()
		os.Exit(1)
	}
}

func serveCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "apply the schema and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func migrateCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "apply the schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			logger.Info().Str("driver", cfg.DatabaseDriver).Msg("schema up to date")
			return nil
		},
	}
}

func seedCommand(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [csv]",
		Short: "load a drug catalog CSV and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			store := repository.New(db)
			_, err = seed.LoadDrugsFile(cmd.Context(), store.Drugs, args[0], logger)
			return err
		},
	}
}

// open connects and migrates.
func open(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	db, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store := repository.New(db)
	if cfg.SeedDrugsCSV != "" {
		if _, err := seed.LoadDrugsFile(ctx, store.Drugs, cfg.SeedDrugsCSV, logger); err != nil {
			logger.Warn().Err(err).Str("path", cfg.SeedDrugsCSV).Msg("unable to load drug catalog")
		}
	}

	opts := api.Options{
		MaxPageLimit:   cfg.MaxPageLimit,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.MetricsEnabled {
		opts.Metrics = metrics.New(db.DB)
	}
	handler := api.New(store, logger, opts)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Str("driver", cfg.DatabaseDriver).Msg("pharmacy inventory server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
