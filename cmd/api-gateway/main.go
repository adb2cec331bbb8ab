package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/topic-selection-api/api/swagger"
	"github.com/noah-isme/topic-selection-api/internal/handler"
	"github.com/noah-isme/topic-selection-api/internal/repository"
	"github.com/noah-isme/topic-selection-api/internal/service"
	"github.com/noah-isme/topic-selection-api/pkg/cache"
	"github.com/noah-isme/topic-selection-api/pkg/config"
	"github.com/noah-isme/topic-selection-api/pkg/database"
	"github.com/noah-isme/topic-selection-api/pkg/logger"
)

// @title Topic Selection API
// @version 1.0.0
// @description Students browse and apply to research topics; teachers curate topics and review applications.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, eligibility cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	students := repository.NewStudentRepository(db)
	teachers := repository.NewTeacherRepository(db)
	topicTypes := repository.NewTopicTypeRepository(db)
	topics := repository.NewTopicRepository(db)
	applications := repository.NewApplicationRepository(db)
	txManager := repository.NewTxManager(db)

	cacheSvc := service.NewCacheService(repository.NewCacheRepository(redisClient), metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)
	sessionSvc := service.NewSessionService(students, teachers, logr, service.SessionConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(service.StudentServiceParams{
		Sessions:     sessionSvc,
		Topics:       topics,
		Teachers:     teachers,
		TopicTypes:   topicTypes,
		Applications: applications,
		Tx:           txManager,
		Cache:        cacheSvc,
		Metrics:      metrics,
		CacheTTL:     cfg.Cache.TTL,
		Validator:    validate,
		Logger:       logr,
	})
	teacherSvc := service.NewTeacherService(sessionSvc, topics, applications, txManager, cacheSvc, metrics, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportSvc = service.NewExportService(studentSvc, logr)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := newRouter(cfg, logr, metrics, routeHandlers{
		student: handler.NewStudentHandler(studentSvc, exportSvc),
		teacher: handler.NewTeacherHandler(teacherSvc),
		ops:     handler.NewMetricsHandler(metrics, db),
		exports: exportSvc != nil,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
