package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/eduforge/crosscheck/internal/dto"
	"github.com/eduforge/crosscheck/internal/engine"
	"github.com/eduforge/crosscheck/internal/preprocess"
	"github.com/eduforge/crosscheck/internal/prompt"
	"github.com/eduforge/crosscheck/internal/rubric"
)

// ErrUnknownContentType indicates the request named a content type without a
// rubric.
var ErrUnknownContentType = errors.New("unknown content type")

// ValidationService fronts the dual-provider validation engine. The only
// errors it returns are request-contract violations, raised before any
// provider call; a validation that reaches the engine always yields a result.
type ValidationService interface {
	Validate(ctx context.Context, payload dto.ValidationRequest) (dto.ValidationResponse, error)
}

type validationService struct {
	engine    *engine.Engine
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewValidationService constructs the service.
func NewValidationService(eng *engine.Engine, validate *validator.Validate, logger zerolog.Logger) ValidationService {
	return &validationService{
		engine:    eng,
		validator: validate,
		logger:    logger.With().Str("component", "validation_service").Logger(),
	}
}

func (s *validationService) Validate(ctx context.Context, payload dto.ValidationRequest) (dto.ValidationResponse, error) {
	tracer := otel.Tracer("github.com/eduforge/crosscheck/internal/service/validation")
	ctx, span := tracer.Start(ctx, "validation.run")
	span.SetAttributes(
		attribute.String("content_type", payload.ContentType),
		attribute.String("topic", payload.Topic),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ValidationResponse{}, err
	}

	spec, err := rubric.SpecFor(rubric.ContentType(payload.ContentType))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown_content_type")
		return dto.ValidationResponse{}, ErrUnknownContentType
	}

	cleaned, warnings, metadata := preprocess.Clean(payload.Content)
	for _, warning := range warnings {
		s.logger.Warn().Str("topic", payload.Topic).Str("warning", warning).Msg("content preprocessing warning")
	}

	basePrompt := prompt.BuildBase(spec, prompt.Input{
		Topic:             payload.Topic,
		TopicsTaughtSoFar: payload.TopicsTaughtSoFar,
		Difficulty:        payload.Difficulty,
		Guidelines:        payload.Guidelines,
		Content:           cleaned,
		Template:          payload.Template,
	})

	result := s.engine.Validate(ctx, engine.Request{
		Spec:       spec,
		BasePrompt: basePrompt,
		Content:    cleaned,
	})

	span.SetAttributes(
		attribute.Int("overall_score", result.OverallScore),
		attribute.Int("genuine_providers", len(result.Providers)),
	)
	s.logger.Info().
		Str("topic", payload.Topic).
		Str("content_type", payload.ContentType).
		Int("overall_score", result.OverallScore).
		Strs("providers", result.Providers).
		Int64("processing_time_ms", result.ProcessingTimeMs).
		Msg("validation completed")

	return dto.NewValidationResponse(result, warnings, metadata), nil
}
