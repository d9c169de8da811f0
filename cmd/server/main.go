// Package main runs the seminar admin HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aura-seminar/admin/config"
	"github.com/aura-seminar/admin/internal/activity"
	"github.com/aura-seminar/admin/internal/admin"
	"github.com/aura-seminar/admin/internal/counter"
	"github.com/aura-seminar/admin/internal/dashboard"
	"github.com/aura-seminar/admin/internal/middleware"
	"github.com/aura-seminar/admin/internal/seminars"
	"github.com/aura-seminar/admin/internal/web"
	"github.com/aura-seminar/admin/pkg/database"
	"github.com/aura-seminar/admin/pkg/redis"
	"github.com/aura-seminar/admin/pkg/response"
	"github.com/aura-seminar/admin/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	store, err := seminars.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout(), logger)
	if err != nil {
		logger.Fatal("seminar store", zap.Error(err))
	}

	// Activity log (optional)
	var recorder activity.Recorder = activity.Nop{}
	var activityLister activity.Lister
	if cfg.Database.URL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		repo := activity.NewRepository(pool)
		recorder = repo
		activityLister = repo
	} else {
		logger.Info("activity log disabled (DATABASE_URL not set)")
	}

	// Last seminar id counter: Redis when configured, memory otherwise
	var idCounter counter.Counter = counter.NewMemory()
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		idCounter = counter.NewRedis(rdb.Client)
	}

	// Photo uploads (optional)
	var photos admin.PhotoUploader
	if cfg.AWS.PhotosBucket != "" {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			PhotosBucket:    cfg.AWS.PhotosBucket,
			MaxPhotoBytes:   int64(cfg.AWS.PhotoMaxMB) * 1024 * 1024,
		}, logger)
		if err != nil {
			logger.Warn("photo uploads disabled", zap.Error(err))
		} else {
			photos = s3Client
		}
	}

	dash := dashboard.New(store, recorder, cfg.Dashboard.PageSize, logger)
	svc := seminars.NewService(store, seminars.NewValidator(nil), idCounter, recorder, logger)
	adminHandler := admin.NewHandler(dash, svc, idCounter, photos, logger)
	activityHandler := activity.NewHandler(activityLister)

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal("templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", web.Static())

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/activity", activityHandler.List)
	adminHandler.Register(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
