package mysql

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"articles-backend/internal/platform/gormconf"
)

func New(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormconf.Config())
	if err != nil {
		return nil, fmt.Errorf("open mysql failed: %w", err)
	}
	if err := gormconf.Tune(ctx, db, 50); err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	return db, nil
}
