package dto

import (
	"github.com/eduforge/crosscheck/internal/engine"
	"github.com/eduforge/crosscheck/internal/preprocess"
	"github.com/eduforge/crosscheck/pkg/ai"
)

// ValidationRequest is the inbound contract for a validation run. The rubric
// template and guidelines arrive as opaque strings owned by external
// configuration storage; difficulty is mandatory for assignments only.
type ValidationRequest struct {
	Content           string   `json:"content" validate:"required"`
	Topic             string   `json:"topic" validate:"required"`
	TopicsTaughtSoFar []string `json:"topicsTaughtSoFar" validate:"required,min=1,dive,required"`
	ContentType       string   `json:"contentType" validate:"required,oneof=PRE_READ ASSIGNMENT LECTURE_NOTE"`
	Difficulty        string   `json:"difficulty" validate:"required_if=ContentType ASSIGNMENT,omitempty,oneof=EASY MEDIUM HARD"`
	Guidelines        string   `json:"guidelines"`
	Template          string   `json:"template"`
}

// ProviderVerdictResponse is one provider's verdict for one round.
type ProviderVerdictResponse struct {
	Provider string              `json:"provider"`
	Genuine  bool                `json:"genuine"`
	Output   ai.ValidationOutput `json:"output"`
}

// RoundResponse pairs both provider verdicts of one round.
type RoundResponse struct {
	ProviderA ProviderVerdictResponse `json:"providerA"`
	ProviderB ProviderVerdictResponse `json:"providerB"`
}

// CriterionResultResponse is the reconciled result for one criterion.
type CriterionResultResponse struct {
	Score      int      `json:"score"`
	Confidence float64  `json:"confidence"`
	Feedback   string   `json:"feedback"`
	Issues     []string `json:"issues"`
}

// ValidationResponse is the outbound, flat-JSON shape of a completed run.
type ValidationResponse struct {
	Round1Results    RoundResponse                      `json:"round1Results"`
	Round2Results    RoundResponse                      `json:"round2Results"`
	FinalScore       map[string]CriterionResultResponse `json:"finalScore"`
	FinalFeedback    map[string]string                  `json:"finalFeedback"`
	OverallScore     int                                `json:"overallScore"`
	Providers        []string                           `json:"providers"`
	ProcessingTimeMs int64                              `json:"processingTimeMs"`
	Warnings         []string                           `json:"warnings"`
	Metadata         preprocess.Metadata                `json:"metadata"`
}

// NewValidationResponse maps an engine result and the preprocessing outcome
// into the outbound contract.
func NewValidationResponse(result engine.Result, warnings []string, metadata preprocess.Metadata) ValidationResponse {
	finalScore := make(map[string]CriterionResultResponse, len(result.FinalScore))
	for key, combined := range result.FinalScore {
		finalScore[key] = CriterionResultResponse{
			Score:      combined.Score,
			Confidence: combined.Confidence,
			Feedback:   combined.Feedback,
			Issues:     combined.Issues,
		}
	}

	if warnings == nil {
		warnings = []string{}
	}

	return ValidationResponse{
		Round1Results:    newRoundResponse(result.Round1),
		Round2Results:    newRoundResponse(result.Round2),
		FinalScore:       finalScore,
		FinalFeedback:    result.FinalFeedback,
		OverallScore:     result.OverallScore,
		Providers:        result.Providers,
		ProcessingTimeMs: result.ProcessingTimeMs,
		Warnings:         warnings,
		Metadata:         metadata,
	}
}

func newRoundResponse(round engine.RoundResults) RoundResponse {
	return RoundResponse{
		ProviderA: ProviderVerdictResponse{
			Provider: round.A.Provider,
			Genuine:  round.A.Genuine,
			Output:   round.A.Output,
		},
		ProviderB: ProviderVerdictResponse{
			Provider: round.B.Provider,
			Genuine:  round.B.Genuine,
			Output:   round.B.Output,
		},
	}
}
