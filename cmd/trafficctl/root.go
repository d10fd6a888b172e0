package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Abhisg5/trafficDetector/internal/config"
	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/repository/postgres"
	"github.com/Abhisg5/trafficDetector/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trafficctl",
	Short: "Collect and analyze multi-provider traffic data",
	Long: `trafficctl drives the traffic detector core from the command line:
collect live readings from the configured providers, seed synthetic history,
resolve place names against the gazetteer, and rank congestion hotspots
over a historical window.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnv builds the config and logger every command starts from.
func loadEnv() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openRepo connects to PostgreSQL, or falls back to an in-memory store that
// is discarded when the command exits.
func openRepo(ctx context.Context, cfg *config.Config, log *slog.Logger) (domain.ReadingRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("no DATABASE_URL configured; using an in-memory store, data is discarded on exit")
		return postgres.NewMemoryRepository(), func() {}, nil
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connCtx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(connCtx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.InitSchema(connCtx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}
