package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"articles-backend/internal/config"
	"articles-backend/internal/observability"
	mysqlClient "articles-backend/internal/platform/mysql"
	postgresClient "articles-backend/internal/platform/postgres"
	rabbitmqClient "articles-backend/internal/platform/rabbitmq"
	redisClient "articles-backend/internal/platform/redis"
	sqliteClient "articles-backend/internal/platform/sqlite"
	"articles-backend/internal/repository"
	"articles-backend/internal/worker"
)

// App holds the process-wide dependencies. Redis, MQConn, EventPublisher
// and EventWorker are nil when the matching feature is disabled.
type App struct {
	Config         *config.Config
	Log            *slog.Logger
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	EventPublisher *rabbitmqClient.EventPublisher
	EventWorker    *worker.ArticleEventWorker
	Registry       *prometheus.Registry

	StartedAt time.Time

	shutdownTracer func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log := observability.NewLogger(cfg.App.LogLevel)
	slog.SetDefault(log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := &App{
		Config:    cfg,
		Log:       log,
		Registry:  registry,
		StartedAt: time.Now(),
	}

	if err := app.init(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracer(ctx, cfg.App.Name, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("init tracer failed: %w", err)
		}
		a.shutdownTracer = shutdown
	}

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	a.DB = db
	if err := repository.Migrate(db); err != nil {
		return err
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		a.Redis = redisCli
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.ArticleEventQueue)
		if err != nil {
			return err
		}
		a.MQConn = mqConn
		a.EventPublisher = rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.ArticleEventQueue)

		eventRepo := repository.NewArticleEventRepository(db)
		a.EventWorker = worker.NewArticleEventWorker(mqConn, eventRepo, cfg.RabbitMQ.ArticleEventQueue, a.Log)
		if err := a.EventWorker.Start(ctx); err != nil {
			return fmt.Errorf("start article event worker failed: %w", err)
		}
	}

	a.Log.Info("app initialised",
		"db_driver", cfg.Database.Driver,
		"redis", cfg.Redis.Enabled,
		"rabbitmq", cfg.RabbitMQ.Enabled,
		"tracing", cfg.Tracing.Enabled,
	)
	return nil
}

// OpenDatabase opens the store selected by database.driver.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	case "postgres":
		return postgresClient.New(ctx, cfg.PostgresDSN())
	case "sqlite":
		return sqliteClient.New(ctx, cfg.Database.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.shutdownTracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracer(ctx); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
