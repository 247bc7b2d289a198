package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultGeminiBaseURL is Google's OpenAI-compatible endpoint for Gemini.
const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// GeminiConfig defines configuration options for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// GeminiClient implements Client against Gemini's OpenAI-compatible chat
// completion endpoint, reusing the go-openai transport.
type GeminiClient struct {
	client *openai.Client
	cfg    GeminiConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewGeminiClient builds a new client using the provided configuration.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: api key is required", ErrConfiguration)
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL
	client := openai.NewClientWithConfig(config)

	return &GeminiClient{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/eduforge/crosscheck/pkg/ai/gemini"),
		logger: logger.With().Str("component", "gemini_client").Logger(),
	}, nil
}

// Name identifies the provider in verdicts and metrics.
func (c *GeminiClient) Name() string { return ProviderGemini }

// Complete sends the rendered prompt and returns the raw model response.
func (c *GeminiClient) Complete(parent context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(parent, "gemini.complete", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: validatorSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	callDuration.WithLabelValues(ProviderGemini).Observe(time.Since(start).Seconds())
	if err != nil {
		callFailures.WithLabelValues(ProviderGemini, "transport").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("gemini complete: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("gemini complete: %w: no choices returned", ErrTransport)
		callFailures.WithLabelValues(ProviderGemini, "empty").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
