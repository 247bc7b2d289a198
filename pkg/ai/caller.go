package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CallerConfig tunes the degradation policy applied to every provider call.
type CallerConfig struct {
	Provider string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// Caller wraps a Client with the engine-wide degradation policy: a per-call
// timeout, at most one retry for timeout and transport failures, no retry for
// configuration and parse failures, and a deterministic stub substitution
// when the call cannot be completed. Invoke never returns an error to the
// orchestrator; the failure, if any, travels inside the Verdict.
type Caller struct {
	client   Client
	provider string
	timeout  time.Duration
	logger   zerolog.Logger
}

// maxAttempts bounds retryable failures: the initial call plus one retry.
const maxAttempts = 2

// NewCaller builds a caller around the given client. A nil client models an
// unconfigured provider: every invocation substitutes a stub verdict.
func NewCaller(client Client, cfg CallerConfig) *Caller {
	provider := cfg.Provider
	if client != nil {
		provider = client.Name()
	}
	if provider == "" {
		provider = ProviderLocal
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Caller{
		client:   client,
		provider: provider,
		timeout:  timeout,
		logger:   cfg.Logger.With().Str("component", "ai_caller").Str("provider", provider).Logger(),
	}
}

// Provider returns the identifier recorded in verdicts from this caller.
func (c *Caller) Provider() string { return c.provider }

// Invoke sends the prompt and returns a verdict, genuine or stub. The content
// argument feeds the stub generator so degraded verdicts stay deterministic
// per request.
func (c *Caller) Invoke(ctx context.Context, prompt, content string, limits []CriterionLimit) Verdict {
	if c.client == nil {
		fallbackTotal.WithLabelValues(c.provider, "unconfigured").Inc()
		c.logger.Warn().Msg("provider unconfigured, substituting stub verdict")
		return c.stub(content, limits, ErrConfiguration)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			fallbackTotal.WithLabelValues(c.provider, "cancelled").Inc()
			return c.stub(content, limits, ctx.Err())
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		raw, err := c.client.Complete(callCtx, prompt)
		cancel()

		if err != nil {
			lastErr = c.classify(callCtx, err)
			if errors.Is(lastErr, ErrTimeout) || errors.Is(lastErr, ErrTransport) {
				c.logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("provider call failed")
				continue
			}
			break
		}

		output, warnings, parseErr := ParseValidationOutput(raw, limits)
		if parseErr != nil {
			lastErr = parseErr
			break
		}

		for _, warning := range warnings {
			c.logger.Warn().Str("warning", warning).Msg("provider response normalised")
		}

		return Verdict{
			Provider: c.provider,
			Output:   output,
			Genuine:  true,
			Warnings: warnings,
		}
	}

	fallbackTotal.WithLabelValues(c.provider, failureReason(lastErr)).Inc()
	c.logger.Error().Err(lastErr).Msg("provider call degraded to stub verdict")
	return c.stub(content, limits, lastErr)
}

func (c *Caller) stub(content string, limits []CriterionLimit, cause error) Verdict {
	return Verdict{
		Provider: c.provider,
		Output:   Stub(content, limits),
		Genuine:  false,
		Err:      cause,
	}
}

// classify maps a raw client failure onto the retry taxonomy. A deadline on
// the per-call context is a timeout; anything else on the wire is transport.
func (c *Caller) classify(callCtx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrTransport), errors.Is(err, ErrParse), errors.Is(err, ErrConfiguration):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrConfiguration):
		return "unconfigured"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "transport"
	}
}
