package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appsvc "articles-backend/internal/app"
	"articles-backend/internal/bootstrap"
	"articles-backend/internal/cache"
	"articles-backend/internal/observability"
	"articles-backend/internal/repository"
	"articles-backend/internal/transport/http/handler"
	"articles-backend/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	if app.Config.App.GinMode != "" {
		gin.SetMode(app.Config.App.GinMode)
	}
	registry := app.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(app.Log),
		middleware.CORS(),
		observability.NewProm(registry).GinHandleMiddleware(),
	)
	if app.Config.Tracing.Enabled {
		router.Use(otelgin.Middleware(app.Config.App.Name))
	}

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/docs", handler.SwaggerUI)
	router.GET("/docs/openapi.json", handler.OpenAPI)

	userRepo := repository.NewUserRepository(app.DB)
	categoryRepo := repository.NewCategoryRepository(app.DB)
	articleRepo := repository.NewArticleRepository(app.DB)
	eventRepo := repository.NewArticleEventRepository(app.DB)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		app.Config.Auth.AllowRoleOnRegister,
	)

	var categoryCache appsvc.CategoryCache
	if app.Redis != nil {
		ttl := time.Duration(app.Config.Redis.CategoryTTLSeconds) * time.Second
		categoryCache = cache.NewCategoryCache(app.Redis, ttl)
	}
	categoryService := appsvc.NewCategoryService(categoryRepo, categoryCache, app.Log)

	eventService := appsvc.NewArticleEventService(eventRepo)
	var publisher appsvc.EventPublisher = eventService
	if app.EventPublisher != nil {
		publisher = app.EventPublisher
	}
	articleService := appsvc.NewArticleService(articleRepo, categoryRepo, publisher, app.Log)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	articleHandler := handler.NewArticleHandler(articleService)
	eventHandler := handler.NewArticleEventHandler(eventService)

	requireAuth := middleware.Auth(authService)
	requireAdmin := middleware.RequireAdmin()

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", requireAuth, authHandler.Profile)

	categoryGroup := api.Group("/categories")
	categoryGroup.GET("", categoryHandler.List)
	categoryGroup.POST("", requireAuth, requireAdmin, categoryHandler.Create)
	categoryGroup.PUT("/:id", requireAuth, requireAdmin, categoryHandler.Update)
	categoryGroup.DELETE("/:id", requireAuth, requireAdmin, categoryHandler.Delete)

	articleGroup := api.Group("/articles")
	articleGroup.GET("", articleHandler.List)
	articleGroup.POST("", requireAuth, articleHandler.Create)
	articleGroup.PUT("/:id", requireAuth, articleHandler.Update)
	articleGroup.DELETE("/:id", requireAuth, articleHandler.Delete)

	adminGroup := api.Group("/admin", requireAuth, requireAdmin)
	adminGroup.GET("/article-events", eventHandler.List)

	return router
}
