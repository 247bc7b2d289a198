package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduforge/crosscheck/internal/config"
	"github.com/eduforge/crosscheck/internal/engine"
	"github.com/eduforge/crosscheck/internal/handler"
	"github.com/eduforge/crosscheck/internal/middleware"
	"github.com/eduforge/crosscheck/internal/router"
	"github.com/eduforge/crosscheck/internal/service"
	"github.com/eduforge/crosscheck/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	callerA := buildOpenAICaller(cfg, logger)
	callerB := buildGeminiCaller(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	eng := engine.New(callerA, callerB, engine.Config{
		Tolerance: cfg.CombineTolerance,
		Logger:    logger,
	})

	validationService := service.NewValidationService(eng, validate, logger)
	validationHandler := handler.NewValidationHandler(validationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		// The validation endpoint waits on two provider rounds; leave
		// ample room past the per-call timeouts and retries.
		ReadTimeout:  time.Minute,
		WriteTimeout: 2 * time.Minute,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ValidationHandler: validationHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildOpenAICaller(cfg config.Config, logger zerolog.Logger) *ai.Caller {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("openai api key not configured, slot A degrades to stub verdicts")
		return ai.NewCaller(nil, ai.CallerConfig{Provider: ai.ProviderOpenAI, Timeout: cfg.ProviderTimeout, Logger: logger})
	}

	client, err := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create openai client: %v", err)
	}

	return ai.NewCaller(client, ai.CallerConfig{Timeout: cfg.ProviderTimeout, Logger: logger})
}

func buildGeminiCaller(cfg config.Config, logger zerolog.Logger) *ai.Caller {
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("gemini api key not configured, slot B degrades to stub verdicts")
		return ai.NewCaller(nil, ai.CallerConfig{Provider: ai.ProviderGemini, Timeout: cfg.ProviderTimeout, Logger: logger})
	}

	client, err := ai.NewGeminiClient(ai.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}

	return ai.NewCaller(client, ai.CallerConfig{Timeout: cfg.ProviderTimeout, Logger: logger})
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
