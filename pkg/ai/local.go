package ai

import (
	"fmt"
	"math"
	"strings"
)

// Stub produces the deterministic placeholder verdict substituted when a
// provider cannot deliver a genuine one. It is a pure function of the content
// and the active rubric limits: length and the presence of structural markers
// drive a flat fraction applied to every criterion ceiling.
func Stub(content string, limits []CriterionLimit) ValidationOutput {
	frac := stubFraction(content)

	var strengths, weaknesses []string
	if strings.Contains(content, "#") {
		strengths = append(strengths, "Content is organised with headings.")
	}
	if strings.Contains(content, "```") {
		strengths = append(strengths, "Content includes fenced code examples.")
	}
	if len(strengths) == 0 {
		strengths = []string{}
	}
	if len(content) < 50 {
		weaknesses = append(weaknesses, "Content is very short.")
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{}
	}

	breakdown := make(map[string]CriterionScore, len(limits))
	total := 0.0
	for _, limit := range limits {
		score := math.Round(frac * limit.Max)
		total += score
		breakdown[limit.Key] = CriterionScore{
			Score:       score,
			Explanation: fmt.Sprintf("Placeholder score for %s based on content structure; no model verdict was available.", limit.Key),
		}
	}

	return ValidationOutput{
		OverallScore:   total,
		ScoreBreakdown: breakdown,
		DetailedFeedback: DetailedFeedback{
			Strengths:  strengths,
			Weaknesses: weaknesses,
			Suggestion: "This is a placeholder verdict produced without a model; have the content reviewed manually.",
		},
	}
}

func stubFraction(content string) float64 {
	if len(content) < 50 {
		return 0.25
	}

	frac := 0.5
	if len(content) >= 200 {
		frac += 0.05
	}
	if len(content) >= 1000 {
		frac += 0.05
	}
	if strings.Contains(content, "\n#") || strings.HasPrefix(content, "#") {
		frac += 0.1
	}
	if strings.Contains(content, "```") {
		frac += 0.05
	}
	if strings.Contains(content, "\n- ") || strings.Contains(content, "\n1. ") {
		frac += 0.05
	}

	if frac > 0.8 {
		frac = 0.8
	}
	return frac
}
