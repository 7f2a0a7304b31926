package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/skynet-epr-api/api/swagger"
	"github.com/noah-isme/skynet-epr-api/internal/handler"
	"github.com/noah-isme/skynet-epr-api/internal/middleware"
	"github.com/noah-isme/skynet-epr-api/internal/repository"
	"github.com/noah-isme/skynet-epr-api/internal/service"
	"github.com/noah-isme/skynet-epr-api/pkg/cache"
	"github.com/noah-isme/skynet-epr-api/pkg/config"
	"github.com/noah-isme/skynet-epr-api/pkg/database"
	"github.com/noah-isme/skynet-epr-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/skynet-epr-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/skynet-epr-api/pkg/middleware/requestid"
)

const version = "1.0.0"

// @title Skynet EPR API
// @version 1.0.0
// @description Performance evaluation records for students and instructors.
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var cacheSvc *service.CacheService
	if cfg.People.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, people cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, "skynet-epr:")
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.People.CacheTTL, logr, true)
		}
	}

	people := repository.NewPersonRepository(db, metrics)
	records := repository.NewEPRRepository(db, metrics)

	peopleSvc := service.NewPeopleService(service.PeopleServiceParams{
		Repo:     people,
		Cache:    cacheSvc,
		CacheTTL: cfg.People.CacheTTL,
		Logger:   logr,
	})
	eprSvc := service.NewEPRService(service.EPRServiceParams{
		Records:   records,
		People:    people,
		Directory: peopleSvc,
		Metrics:   metrics,
		Validator: validator.New(),
		Logger:    logr,
	})
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Records: records,
		People:  people,
		Logger:  logr,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics, cfg.Metrics.Path))
	}
	r.Use(middleware.WithResponseMeta())

	system := handler.NewMetricsHandler(metrics, db)
	r.GET("/health", system.Health)
	r.GET("/ready", system.Ready)
	if metrics != nil {
		r.GET(cfg.Metrics.Path, system.Prometheus)
	}
	if cfg.Docs.Enabled {
		swagger.SwaggerInfo.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	peopleHandler := handler.NewPeopleHandler(peopleSvc)
	eprHandler := handler.NewEPRHandler(eprSvc, exportSvc)
	index := handler.NewIndexHandler(cfg.APIPrefix, version)

	api := r.Group(cfg.APIPrefix)
	api.GET("", index.Index)
	api.GET("/people", peopleHandler.List)
	api.GET("/people/:id", peopleHandler.Get)
	api.GET("/epr", eprHandler.List)
	api.GET("/epr/export", eprHandler.Export)
	api.POST("/epr/assist", eprHandler.Assist)
	api.GET("/epr/:id", eprHandler.Get)
	api.POST("/epr", eprHandler.Create)
	api.PATCH("/epr/:id", eprHandler.Update)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
