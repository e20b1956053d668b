package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/umeedai/umeed-api/api/swagger"
	"github.com/umeedai/umeed-api/internal/handler"
	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/repository"
	"github.com/umeedai/umeed-api/internal/service"
	"github.com/umeedai/umeed-api/pkg/audit"
	"github.com/umeedai/umeed-api/pkg/cache"
	"github.com/umeedai/umeed-api/pkg/config"
	"github.com/umeedai/umeed-api/pkg/database"
	"github.com/umeedai/umeed-api/pkg/logger"
	corsmiddleware "github.com/umeedai/umeed-api/pkg/middleware/cors"
	reqidmiddleware "github.com/umeedai/umeed-api/pkg/middleware/requestid"
)

// @title UmeedAI API
// @version 0.1.0
// @description Student risk monitoring backend with configurable risk thresholds
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, threshold list cache disabled", "error", err)
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}()

	auditWriter := audit.NewFileWriter(cfg.Audit)
	defer auditWriter.Close()

	thresholdRepo := repository.NewThresholdRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	validate := middleware.NewValidator()
	metricsSvc := service.NewMetricsService()

	configSvc := service.NewConfigService(thresholdRepo, auditWriter, cacheRepo, metricsSvc, logr, service.ConfigServiceConfig{
		CacheEnabled: cfg.Risk.CacheEnabled && redisClient != nil,
		CacheTTL:     cfg.Risk.CacheTTL,
	})
	studentSvc := service.NewStudentService(studentRepo, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, logr)
	academicSvc := service.NewAcademicService(academicRepo, studentRepo, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	riskSvc := service.NewRiskService(configSvc, studentRepo, attendanceRepo, academicRepo, logr)

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router := &handler.Router{
		Validator:   validate,
		AuthService: authSvc,
		Auth:        handler.NewAuthHandler(authSvc),
		Config:      handler.NewConfigHandler(configSvc),
		Students:    handler.NewStudentHandler(studentSvc),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc),
		Academics:   handler.NewAcademicHandler(academicSvc),
		Risk:        handler.NewRiskHandler(riskSvc),
	}
	router.Register(r, cfg.APIPrefix)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
