package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sica-labs/sica-api/api/swagger"
	"github.com/sica-labs/sica-api/internal/handler"
	"github.com/sica-labs/sica-api/internal/middleware"
	"github.com/sica-labs/sica-api/internal/repository"
	"github.com/sica-labs/sica-api/internal/service"
	"github.com/sica-labs/sica-api/pkg/cache"
	"github.com/sica-labs/sica-api/pkg/config"
	"github.com/sica-labs/sica-api/pkg/database"
	"github.com/sica-labs/sica-api/pkg/logger"
	corsmiddleware "github.com/sica-labs/sica-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sica-labs/sica-api/pkg/middleware/requestid"
)

// @title SICA API
// @version 1.0.0
// @description Lab room scheduling, advisor availability and attendance service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, cfg.Availability.CacheEnabled)
	}

	advisorRepo := repository.NewAdvisorRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	courseRepo := repository.NewCourseScheduleRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	advisorSvc := service.NewAdvisorService(advisorRepo, validate, logr)
	shiftSvc := service.NewShiftService(shiftRepo, cfg.Labs.Rooms, validate, logr)
	courseSvc := service.NewCourseScheduleService(courseRepo, cfg.Labs.Rooms, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, validate, logr)
	availabilitySvc := service.NewAvailabilityService(shiftRepo, advisorRepo, attendanceRepo, cacheSvc, logr)

	advisorHandler := handler.NewAdvisorHandler(advisorSvc)
	shiftHandler := handler.NewShiftHandler(shiftSvc, availabilitySvc)
	courseHandler := handler.NewCourseScheduleHandler(courseSvc, cfg.Labs.DefaultTermID)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/status", metricsHandler.Status)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		api.GET("/advisors", advisorHandler.List)
		api.POST("/advisors", advisorHandler.Create)
		api.GET("/advisors/:id", advisorHandler.Get)
		api.PUT("/advisors/:id", advisorHandler.Update)
		api.DELETE("/advisors/:id", advisorHandler.Delete)
		api.GET("/advisors/:id/shifts", shiftHandler.ListByAdvisor)

		api.GET("/shifts", shiftHandler.List)
		api.POST("/shifts", shiftHandler.CreateBlock)
		api.DELETE("/shifts/:id", shiftHandler.DeleteBlock)

		api.GET("/course-schedules", courseHandler.List)
		api.POST("/course-schedules", courseHandler.Create)
		api.DELETE("/course-schedules/:id", courseHandler.Delete)

		api.GET("/rooms/:room/shifts/week", shiftHandler.WeekView)
		api.GET("/rooms/:room/course-schedules/week", courseHandler.WeekView)
		api.DELETE("/rooms/:room/course-schedules", courseHandler.Clear)
		api.GET("/rooms/:room/availability", availabilityHandler.Query)

		api.GET("/attendance", attendanceHandler.History)
		api.POST("/attendance/check-in", attendanceHandler.CheckIn)
		api.POST("/attendance/check-out", attendanceHandler.CheckOut)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "rooms", cfg.Labs.Rooms)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
