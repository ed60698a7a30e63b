package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Moti-Eli/edu-plus/api/swagger"
	"github.com/Moti-Eli/edu-plus/internal/handler"
	"github.com/Moti-Eli/edu-plus/internal/middleware"
	"github.com/Moti-Eli/edu-plus/internal/repository"
	"github.com/Moti-Eli/edu-plus/internal/service"
	"github.com/Moti-Eli/edu-plus/pkg/cache"
	"github.com/Moti-Eli/edu-plus/pkg/config"
	"github.com/Moti-Eli/edu-plus/pkg/database"
	"github.com/Moti-Eli/edu-plus/pkg/logger"
	corsmiddleware "github.com/Moti-Eli/edu-plus/pkg/middleware/cors"
	reqidmiddleware "github.com/Moti-Eli/edu-plus/pkg/middleware/requestid"
)

// @title Edu-Plus Attendance API
// @version 1.0.0
// @description Attendance tracking and reconciliation for instructor programs
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
	if cfg.Stats.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, statistics caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	adminAttendanceRepo := repository.NewAdminAttendanceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	statsSvc := service.NewStatisticsService(attendanceRepo, adminAttendanceRepo, scheduleRepo, userRepo, cacheSvc, cfg.Stats.CacheTTL, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, userRepo, statsSvc, validate, logr)
	adminAttendanceSvc := service.NewAdminAttendanceService(adminAttendanceRepo, statsSvc, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, logr)
	exportSvc := service.NewExportService(statsSvc, nil, nil, logr)
	chatSvc := service.NewChatService(attendanceSvc, adminAttendanceSvc, cfg.Chat.Enabled, logr)
	assistantSvc := service.NewAssistantService(statsSvc, attendanceRepo, adminAttendanceRepo, cfg.Assistant, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "edu-plus",
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	router := handler.NewRouter(
		handler.NewAuthHandler(authSvc),
		handler.NewAttendanceHandler(attendanceSvc),
		handler.NewAdminAttendanceHandler(adminAttendanceSvc),
		handler.NewStatsHandler(statsSvc, exportSvc),
		handler.NewUserHandler(userSvc),
		handler.NewScheduleHandler(scheduleSvc),
		handler.NewChatHandler(chatSvc),
		handler.NewAssistantHandler(assistantSvc),
		handler.NewMetricsHandler(metricsSvc),
		authSvc,
	)
	router.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
