package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/topic-selection-api/internal/handler"
	"github.com/noah-isme/topic-selection-api/internal/middleware"
	"github.com/noah-isme/topic-selection-api/internal/service"
	"github.com/noah-isme/topic-selection-api/pkg/config"
	"github.com/noah-isme/topic-selection-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/topic-selection-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/topic-selection-api/pkg/middleware/requestid"
)

type routeHandlers struct {
	student *handler.StudentHandler
	teacher *handler.TeacherHandler
	ops     *handler.MetricsHandler
	exports bool
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.ops.Health)
	r.GET("/ready", h.ops.Ready)
	if metrics != nil {
		r.GET("/metrics", h.ops.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	student := api.Group("/student")
	student.GET("/topics", h.student.Topics)
	student.GET("/teachers", h.student.Teachers)
	student.POST("/applications", h.student.Apply)
	student.GET("/applications", h.student.History)
	if h.exports {
		student.GET("/applications/export", h.student.ExportHistory)
	}
	student.POST("/proposals", h.student.Propose)
	student.GET("/teacher", h.student.ApprovedTeacher)
	student.GET("/topic", h.student.ApprovedTopic)

	teacher := api.Group("/teacher")
	teacher.POST("/topics", h.teacher.AddTopic)
	teacher.GET("/topics", h.teacher.Topics)
	teacher.GET("/applications", h.teacher.PendingApplications)
	teacher.POST("/applications/review", h.teacher.Review)

	return r
}
