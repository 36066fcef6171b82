package sqlite

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"articles-backend/internal/platform/gormconf"
)

// New opens a SQLite database. A single connection avoids "database is
// locked" errors and keeps shared in-memory databases consistent.
func New(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormconf.Config())
	if err != nil {
		return nil, fmt.Errorf("open sqlite failed: %w", err)
	}
	if err := gormconf.Tune(ctx, db, 1); err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return db, nil
}
