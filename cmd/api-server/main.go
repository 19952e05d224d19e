package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/techfest-api/api/swagger"
	"github.com/noah-isme/techfest-api/internal/handler"
	"github.com/noah-isme/techfest-api/internal/middleware"
	"github.com/noah-isme/techfest-api/internal/models"
	"github.com/noah-isme/techfest-api/internal/repository"
	"github.com/noah-isme/techfest-api/internal/service"
	"github.com/noah-isme/techfest-api/pkg/cache"
	"github.com/noah-isme/techfest-api/pkg/config"
	"github.com/noah-isme/techfest-api/pkg/database"
	"github.com/noah-isme/techfest-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/techfest-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/techfest-api/pkg/middleware/requestid"
)

// @title TechFest API
// @version 1.0.0
// @description Event catalogue and back-office API for the annual tech fest
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Events.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Events.CacheTTL, logr, true)
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Events.CacheTTL, logr, false)
	}

	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		HistoryLimit:      cfg.Auth.LoginHistoryLimit,
	})
	eventSvc := service.NewEventService(eventRepo, cacheSvc, userRepo, nil, logr, cfg.Events.CacheTTL)
	exportSvc := service.NewExportService(eventSvc, logr)

	eventHandler := handler.NewEventHandler(eventSvc, exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/events", eventHandler.List)
		api.GET("/events/:id", eventHandler.Get)

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		protected.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
		{
			protected.POST("/events", eventHandler.Create)
			protected.PUT("/events/:id", eventHandler.Update)
			protected.DELETE("/events/:id", eventHandler.Delete)
			protected.GET("/events/export",
				middleware.Audit(userRepo, models.AuditActionEventExport, "event"),
				eventHandler.Export)
			protected.GET("/admin/login-history", authHandler.LoginHistory)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
