package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/showdeck/showdeck/internal/api"
	"github.com/showdeck/showdeck/internal/config"
	"github.com/showdeck/showdeck/internal/database"
	"github.com/showdeck/showdeck/internal/logger"
	"github.com/showdeck/showdeck/internal/scheduler"
	"github.com/showdeck/showdeck/internal/trending"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "showdeck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("database", cfg.Database.Path).
		Msg("Starting ShowDeck")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	server, err := api.NewServer(db.Conn(), cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	trendingService := trending.NewService(db.Conn(), log.Logger)
	if err := sched.Register(scheduler.JobConfig{
		ID:         "trending-refresh",
		Name:       "Trending Refresh",
		Cron:       cfg.Jobs.TrendingRefreshCron,
		Func:       trendingService.Refresh,
		RunOnStart: true,
	}); err != nil {
		return fmt.Errorf("failed to register trending job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Address())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("ShowDeck stopped")
	return nil
}
