// @title Course Creator API
// @version 1.0
// @description Generates structured courses with an LLM and serves them as JSON.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/ManojPokuru/course-creator-plugin/cmd/api/docs"
	"github.com/ManojPokuru/course-creator-plugin/internal/bootstrap"
	"github.com/ManojPokuru/course-creator-plugin/internal/config"
	"github.com/ManojPokuru/course-creator-plugin/internal/handler"
	"github.com/ManojPokuru/course-creator-plugin/internal/logger"
	"github.com/ManojPokuru/course-creator-plugin/internal/middleware"
	"github.com/ManojPokuru/course-creator-plugin/internal/telemetry"
	"github.com/ManojPokuru/course-creator-plugin/internal/util"
	"github.com/ManojPokuru/course-creator-plugin/internal/validation"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	comp, err := bootstrap.Build(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer comp.Close()

	// Initialize handlers
	validator := validation.NewValidator()
	courseHandler := handler.NewCourseHandler(comp.Courses, comp.Results, comp.Extractor, validator, cfg.Generation.IncludeVideos)
	questionHandler := handler.NewQuestionHandler(comp.Questions, validator)
	healthHandler := handler.NewHealthHandler(comp.Cache, comp.Model)

	// A course takes minutes to generate, so the timeouts come from config.
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: util.NewULID,
	}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", healthHandler.Health)

	apiGroup := app.Group("/api")
	courseHandler.Register(apiGroup, middleware.RateLimit(cfg.Server.RateLimitMax, cfg.Server.RateLimitWindow))
	apiGroup.Post("/questions", questionHandler.GenerateQuestion)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Warn("Failed to flush traces", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
