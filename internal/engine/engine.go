// Package engine runs the dual-provider, two-round validation of educational
// content: two concurrent provider calls per round, a hard barrier between
// rounds, and a per-criterion combination of the round-2 verdicts.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eduforge/crosscheck/internal/prompt"
	"github.com/eduforge/crosscheck/internal/rubric"
	"github.com/eduforge/crosscheck/pkg/ai"
)

// RoundResults holds one round's verdicts for both providers.
type RoundResults struct {
	A ai.Verdict
	B ai.Verdict
}

// CombinedCriterion is the reconciled per-criterion result.
type CombinedCriterion struct {
	Score      int      `json:"score"`
	Confidence float64  `json:"confidence"`
	Feedback   string   `json:"feedback"`
	Issues     []string `json:"issues"`
}

// Result is the complete outcome of one validation request. It is handed to
// the caller for persistence and never mutated afterwards.
type Result struct {
	Round1           RoundResults
	Round2           RoundResults
	FinalScore       map[string]CombinedCriterion
	FinalFeedback    map[string]string
	OverallScore     int
	Providers        []string
	ProcessingTimeMs int64
}

// Request carries everything one validation run needs. Content is the
// cleaned text, used to keep degraded stub verdicts deterministic.
type Request struct {
	Spec       rubric.Spec
	BasePrompt string
	Content    string
}

// Config tunes the engine.
type Config struct {
	// Tolerance is the score difference, in points, under which the two
	// providers are treated as agreeing on a criterion.
	Tolerance float64
	Logger    zerolog.Logger
}

// Engine orchestrates the two rounds for a fixed pair of provider callers.
// It is safe for concurrent use: every validation keeps its state on the
// stack of its own call tree.
type Engine struct {
	callerA   *ai.Caller
	callerB   *ai.Caller
	tolerance float64
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// DefaultTolerance is the agreement threshold used when none is configured.
const DefaultTolerance = 2.0

// New constructs an engine around two provider callers.
func New(callerA, callerB *ai.Caller, cfg Config) *Engine {
	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	return &Engine{
		callerA:   callerA,
		callerB:   callerB,
		tolerance: tolerance,
		logger:    cfg.Logger.With().Str("component", "validation_engine").Logger(),
		tracer:    otel.Tracer("github.com/eduforge/crosscheck/internal/engine"),
	}
}

// Validate runs both rounds and combines the round-2 verdicts. It never
// fails: every provider call resolves to a genuine or stub verdict, so the
// result is always fully populated.
func (e *Engine) Validate(parent context.Context, req Request) Result {
	ctx, span := e.tracer.Start(parent, "engine.validate", trace.WithAttributes(
		attribute.String("content_type", string(req.Spec.ContentType)),
	))
	defer span.End()

	start := time.Now()
	limits := req.Spec.Limits()

	round1 := e.runRound(ctx, req.BasePrompt, req.BasePrompt, req.Content, limits)
	e.logRound("round1", round1)

	// Round 2 re-scores with the peer's round-1 verdict visible. The
	// barrier above guarantees both round-1 verdicts exist by now.
	promptA := prompt.AppendPeerAssessment(req.BasePrompt, round1.B.Provider, round1.B.Output)
	promptB := prompt.AppendPeerAssessment(req.BasePrompt, round1.A.Provider, round1.A.Output)
	round2 := e.runRound(ctx, promptA, promptB, req.Content, limits)
	e.logRound("round2", round2)

	finalScore, finalFeedback, overall := e.combine(req.Spec, round2)

	providers := make([]string, 0, 2)
	if round2.A.Genuine {
		providers = append(providers, round2.A.Provider)
	}
	if round2.B.Genuine {
		providers = append(providers, round2.B.Provider)
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("overall_score", overall),
		attribute.StringSlice("providers", providers),
	)

	return Result{
		Round1:           round1,
		Round2:           round2,
		FinalScore:       finalScore,
		FinalFeedback:    finalFeedback,
		OverallScore:     overall,
		Providers:        providers,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}

// runRound fires both provider calls concurrently and waits for both to
// resolve. Each call is individually timeout-bounded, so the barrier cannot
// block indefinitely.
func (e *Engine) runRound(ctx context.Context, promptA, promptB, content string, limits []ai.CriterionLimit) RoundResults {
	var results RoundResults
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		results.A = e.callerA.Invoke(ctx, promptA, content, limits)
	}()
	go func() {
		defer wg.Done()
		results.B = e.callerB.Invoke(ctx, promptB, content, limits)
	}()
	wg.Wait()

	return results
}

func (e *Engine) logRound(round string, results RoundResults) {
	e.logger.Info().
		Str("round", round).
		Str("provider_a", results.A.Provider).
		Bool("genuine_a", results.A.Genuine).
		Float64("score_a", results.A.Output.OverallScore).
		Str("provider_b", results.B.Provider).
		Bool("genuine_b", results.B.Genuine).
		Float64("score_b", results.B.Output.OverallScore).
		Msg("validation round resolved")
}
