package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cfb-catalog/internal/app"
	"cfb-catalog/internal/config"
	"cfb-catalog/internal/platform/logging"
)

// One-shot ingest run: fetch the configured season from the provider,
// upsert into Postgres, print the outcome, exit non-zero on problems.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	svc, err := app.NewIngestService(cfg, logger)
	if err != nil {
		logger.Error("build ingest pipeline", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome := svc.Run(ctx, cfg.CFBDSeason)

	logger.Info("ingest outcome",
		"season", cfg.CFBDSeason,
		"players_inserted", outcome.Inserted,
		"players_updated", outcome.Updated,
		"teams_inserted", outcome.TeamsInserted,
		"teams_updated", outcome.TeamsUpdated,
		"api_calls", outcome.APICalls,
	)
	for _, problem := range outcome.Errors {
		logger.Error("ingest problem", "problem", problem)
	}

	if len(outcome.Errors) > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}
