package ai

import (
	"context"
	"errors"
)

// Provider identifiers used in verdicts and metrics labels.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// Failure taxonomy for provider calls. ErrConfiguration and ErrParse are
// terminal; ErrTimeout and ErrTransport are retried at most once before the
// call degrades to a stub verdict.
var (
	ErrConfiguration = errors.New("provider not configured")
	ErrTimeout       = errors.New("provider call timed out")
	ErrParse         = errors.New("provider response did not match the mandated schema")
	ErrTransport     = errors.New("provider transport failure")
)

// CriterionLimit declares one rubric criterion key and its point ceiling.
// The limits for a call come from the active rubric and always sum to 100.
type CriterionLimit struct {
	Key string
	Max float64
}

// CriterionScore is the per-criterion portion of a provider verdict.
type CriterionScore struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// DetailedFeedback carries the free-text portion of a provider verdict.
type DetailedFeedback struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Suggestion string   `json:"suggestion"`
}

// ValidationOutput is the canonical verdict parsed from a provider response.
// After parsing, OverallScore always equals the sum of the breakdown scores.
type ValidationOutput struct {
	OverallScore     float64                   `json:"overallScore"`
	ScoreBreakdown   map[string]CriterionScore `json:"scoreBreakdown"`
	DetailedFeedback DetailedFeedback          `json:"detailedFeedback"`
}

// Verdict wraps a ValidationOutput with provenance. Genuine is false when the
// output is a stub substitution or came from the local client.
type Verdict struct {
	Provider string
	Output   ValidationOutput
	Genuine  bool
	Warnings []string
	Err      error
}

// Client sends a rendered prompt to a completion endpoint and returns the raw
// response text. Implementations must honour context cancellation.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
