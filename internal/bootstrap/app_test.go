package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"articles-backend/internal/config"
)

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}
	if _, err := OpenDatabase(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestNewWithSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.toml"))
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "articles.db"))
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("RABBITMQ_ENABLED", "false")
	t.Setenv("TRACING_ENABLED", "false")

	app, err := New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if app.DB == nil || app.Registry == nil {
		t.Fatalf("expected database and registry to be set")
	}
	if app.Redis != nil || app.MQConn != nil || app.EventPublisher != nil {
		t.Fatalf("optional dependencies should be nil when disabled")
	}
	if !app.DB.Migrator().HasTable("articles") {
		t.Fatalf("expected articles table to be migrated")
	}
}
