package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/eduforge/crosscheck/internal/rubric"
	"github.com/eduforge/crosscheck/pkg/ai"
)

// Confidence assigned when only one source contributed to a criterion.
const (
	singleSourceConfidence = 0.5
	stubOnlyConfidence     = 0.2
)

// combine merges the round-2 verdicts criterion by criterion. With two
// genuine verdicts the score is the rounded mean and the confidence falls
// with the score gap; with one genuine verdict the result degrades to that
// provider alone; with none it degrades to the deterministic stub.
func (e *Engine) combine(spec rubric.Spec, round2 RoundResults) (map[string]CombinedCriterion, map[string]string, int) {
	finalScore := make(map[string]CombinedCriterion, len(spec.Criteria))
	finalFeedback := make(map[string]string, len(spec.Criteria))
	overall := 0

	for _, criterion := range spec.Criteria {
		entryA := round2.A.Output.ScoreBreakdown[criterion.Key]
		entryB := round2.B.Output.ScoreBreakdown[criterion.Key]

		var combined CombinedCriterion
		switch {
		case round2.A.Genuine && round2.B.Genuine:
			combined = e.combinePair(criterion, round2.A.Provider, entryA, round2.B.Provider, entryB)
		case round2.A.Genuine:
			combined = singleSource(entryA, round2.B.Provider)
		case round2.B.Genuine:
			combined = singleSource(entryB, round2.A.Provider)
		default:
			combined = CombinedCriterion{
				Score:      int(math.Round(entryA.Score)),
				Confidence: stubOnlyConfidence,
				Feedback:   entryA.Explanation,
				Issues:     []string{"no provider verdict was available; score is a deterministic placeholder"},
			}
		}

		if combined.Issues == nil {
			combined.Issues = []string{}
		}
		finalScore[criterion.Key] = combined
		finalFeedback[criterion.Key] = combined.Feedback
		overall += combined.Score
	}

	return finalScore, finalFeedback, overall
}

func (e *Engine) combinePair(criterion rubric.Criterion, providerA string, entryA ai.CriterionScore, providerB string, entryB ai.CriterionScore) CombinedCriterion {
	diff := math.Abs(entryA.Score - entryB.Score)
	score := int(math.Round((entryA.Score + entryB.Score) / 2))

	confidence := 1.0
	if criterion.MaxPoints > 0 {
		confidence = 1 - diff/criterion.MaxPoints
	}
	if confidence < 0 {
		confidence = 0
	}

	var feedback string
	var issues []string
	if diff <= e.tolerance {
		feedback = representativeExplanation(entryA.Explanation, entryB.Explanation)
	} else {
		feedback = strings.TrimSpace(fmt.Sprintf("%s: %s\n%s: %s", providerA, entryA.Explanation, providerB, entryB.Explanation))
		issues = append(issues, fmt.Sprintf("providers diverged by %.0f points on %s", diff, criterion.Key))
	}

	return CombinedCriterion{
		Score:      score,
		Confidence: confidence,
		Feedback:   feedback,
		Issues:     issues,
	}
}

func singleSource(entry ai.CriterionScore, degradedPeer string) CombinedCriterion {
	return CombinedCriterion{
		Score:      int(math.Round(entry.Score)),
		Confidence: singleSourceConfidence,
		Feedback:   entry.Explanation,
		Issues:     []string{fmt.Sprintf("peer provider %s did not return a genuine verdict; single-source score", degradedPeer)},
	}
}

// representativeExplanation keeps a single explanation when the providers
// agree; the longer one usually carries more detail.
func representativeExplanation(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if len(b) > len(a) {
		return b
	}
	return a
}
