package main

import (
	"context"
	"log"

	"articles-backend/internal/bootstrap"
	"articles-backend/internal/config"
	"articles-backend/internal/observability"
	"articles-backend/internal/repository"
	"articles-backend/internal/seed"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger := observability.NewLogger(cfg.App.LogLevel)

	db, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("open database failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := seed.Run(ctx, db, logger); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.Info("seed complete")
}
