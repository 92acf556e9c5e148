package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"visapath/visa-advisor/internal/config"
	"visapath/visa-advisor/internal/handlers"
	"visapath/visa-advisor/internal/models"
	"visapath/visa-advisor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("✅ Config loaded successfully",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	// Initialize services
	ctx := context.Background()
	generator, err := services.NewTextGenerator(ctx, cfg.LLM.Provider, cfg.LLM.APIKey(), zapLogger)
	if err != nil {
		zapLogger.Fatal("❌ Failed to initialize text generator", zap.Error(err))
	}

	completionClient := services.NewCompletionClient(generator, services.RetryPolicy{
		MaxAttempts:    cfg.LLM.RetryMaxAttempts,
		Delay:          cfg.LLM.RetryDelay,
		AttemptTimeout: cfg.LLM.RequestTimeout,
	}, cfg.LLM.RateLimit, zapLogger)

	schemas, err := services.NewResponseSchemas()
	if err != nil {
		zapLogger.Fatal("❌ Failed to compile response schemas", zap.Error(err))
	}

	advisorService := services.NewAdvisorService(
		services.NewDocumentParserService(),
		completionClient,
		schemas,
		services.AdvisorOptions{
			Model: cfg.LLM.Model,
			Resume: services.SamplingParams{
				MaxTokens:   cfg.Resume.MaxTokens,
				Temperature: cfg.Resume.Temperature,
			},
			Analysis: services.SamplingParams{
				MaxTokens:   cfg.Analysis.MaxTokens,
				Temperature: cfg.Analysis.Temperature,
			},
		},
		zapLogger,
	)
	zapLogger.Info("✅ Services initialized successfully")

	// Initialize Handlers
	h := handlers.Handlers{
		Resume:  handlers.NewResumeHandler(advisorService, cfg.Storage.MaxFileSize, zapLogger),
		Analyze: handlers.NewAnalyzeHandler(advisorService, zapLogger),
		Health:  handlers.NewHealthHandler(cfg.LLM.Provider, cfg.LLM.Model),
	}

	// Worst case is every attempt timing out plus the waits between them.
	attempts := time.Duration(max(cfg.LLM.RetryMaxAttempts, 1))
	writeTimeout := attempts*cfg.LLM.RequestTimeout + (attempts-1)*cfg.LLM.RetryDelay + 10*time.Second

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Visa Advisor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.SetupRoutes(app, h, cfg.Server.StaticDir)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.AnalysisResponse{
		Success: false,
		Error:   err.Error(),
	})
}
