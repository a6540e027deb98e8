package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/cache"
	"github.com/skillup-edu/school-service/internal/config"
	"github.com/skillup-edu/school-service/internal/handlers"
	"github.com/skillup-edu/school-service/internal/middleware"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/repositories/document"
	"github.com/skillup-edu/school-service/internal/store"
	"github.com/skillup-edu/school-service/internal/utils"
	"github.com/skillup-edu/school-service/internal/validator"
	"github.com/skillup-edu/school-service/pkg"

	svc "github.com/skillup-edu/school-service/internal/services"
)

func main() {
	logger := utils.NewDefaultLogger()
	slogger := utils.ToSlogLogger(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	documentStore := store.NewPostgresStore(db, slogger)
	if err := documentStore.Migrate(); err != nil {
		logger.Error("failed to migrate documents table", "error", err)
		os.Exit(1)
	}

	repos := repositories.NewIntegrityManager(document.NewManager(documentStore))
	auditor := audit.NewLogger(documentStore)
	v := validator.New()

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	cacheService := cache.NewRedisCache(redisClient, slogger)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	grading := svc.NewGradingService(repos, auditor, publisher, slogger, v)
	enrollment := svc.NewEnrollmentService(repos, documentStore, auditor, publisher, slogger, v)
	catalog := svc.NewCatalogService(repos, cacheService, slogger)
	export := svc.NewExportService(repos, slogger)

	auth := middleware.NewAuthMiddleware(cfg, repos.Users(), logger)
	handlerManager := handlers.NewHandlerManager(repos, grading, enrollment, catalog, export, auditor, auth, v, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
