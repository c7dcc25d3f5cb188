package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/enare-prep-api/api/swagger"
	"github.com/noah-isme/enare-prep-api/internal/handler"
	"github.com/noah-isme/enare-prep-api/internal/middleware"
	"github.com/noah-isme/enare-prep-api/internal/repository"
	"github.com/noah-isme/enare-prep-api/internal/service"
	"github.com/noah-isme/enare-prep-api/pkg/cache"
	"github.com/noah-isme/enare-prep-api/pkg/config"
	"github.com/noah-isme/enare-prep-api/pkg/database"
	"github.com/noah-isme/enare-prep-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/enare-prep-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/enare-prep-api/pkg/middleware/requestid"
	"github.com/noah-isme/enare-prep-api/pkg/storage"
)

// @title ENARE Prep API
// @version 0.1.0
// @description Personal study tracker for residency exam preparation
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	kv, err := newKVStore(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init storage", "driver", cfg.Storage.Driver, "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	validate := validator.New()

	studyRepo := repository.NewStudyRepository(kv, logr)
	subjectRepo := repository.NewSubjectRepository(kv, logr)

	catalogSvc := service.NewCatalogService(subjectRepo, validate, logr)
	studySvc := service.NewStudyService(studyRepo, catalogSvc, cacheSvc, metricsSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(studyRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	scheduleSvc := service.NewScheduleService(studyRepo, logr)
	backupSvc := service.NewBackupService(studyRepo, subjectRepo, cacheSvc, logr)

	exportsDir, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init exports directory", "error", err)
	}
	exportSvc := service.NewExportService(studyRepo, exportsDir, logr)

	if cfg.Seed.Enabled {
		if err := backupSvc.SeedSampleData(ctx); err != nil {
			logr.Warn("failed to seed sample data", zap.Error(err))
		}
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
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	subjectHandler := handler.NewSubjectHandler(catalogSvc)
	studyHandler := handler.NewStudyHandler(studySvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	backupHandler := handler.NewBackupHandler(backupSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/subjects", subjectHandler.List)
		api.POST("/subjects", subjectHandler.Create)
		api.DELETE("/subjects/:id", subjectHandler.Delete)

		api.GET("/studies", studyHandler.List)
		api.POST("/studies", studyHandler.Create)

		api.GET("/dashboard", dashboardHandler.Summary)
		api.GET("/schedule", scheduleHandler.Queue)

		api.GET("/backup/export", backupHandler.Export)
		api.POST("/backup/import", backupHandler.Import)

		api.GET("/exports/history", exportHandler.History)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newKVStore(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return repository.NewMemoryStore(), nil
	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageDriverFile:
		return repository.NewFileStore(cfg.Storage.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
