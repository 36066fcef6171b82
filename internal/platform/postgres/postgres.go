package postgres

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"articles-backend/internal/platform/gormconf"
)

func New(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormconf.Config())
	if err != nil {
		return nil, fmt.Errorf("open postgres failed: %w", err)
	}
	if err := gormconf.Tune(ctx, db, 50); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return db, nil
}
