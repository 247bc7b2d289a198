package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testLimits = []CriterionLimit{
	{Key: "clarity", Max: 40},
	{Key: "accuracy", Max: 60},
}

const wellFormedResponse = `{
  "overallScore": 80,
  "scoreBreakdown": {
    "clarity": {"score": 30, "explanation": "Mostly clear."},
    "accuracy": {"score": 50, "explanation": "One minor factual slip."}
  },
  "detailedFeedback": {
    "strengths": ["Good structure"],
    "weaknesses": ["Dense second section"],
    "suggestion": "Split the second section."
  }
}`

func TestExtractJSONFromFencedBlock(t *testing.T) {
	content := "Here is my assessment:\n```json\n{\"overallScore\": 10}\n```\nDone."
	require.Equal(t, `{"overallScore": 10}`, ExtractJSON(content))
}

func TestExtractJSONBareObject(t *testing.T) {
	require.Equal(t, `{"a": 1}`, ExtractJSON("noise {\"a\": 1} trailing"))
}

func TestExtractJSONNothingFound(t *testing.T) {
	require.Empty(t, ExtractJSON("no json here"))
}

func TestExtractJSONSkipsLeadingNonJSONFence(t *testing.T) {
	content := "For example:\n```text\nscore the content carefully\n```\n" +
		"My verdict:\n```json\n{\"overallScore\": 10}\n```"
	require.Equal(t, `{"overallScore": 10}`, ExtractJSON(content))
}

func TestExtractJSONFallsBackPastEmptyFences(t *testing.T) {
	content := "```text\nno object in this example\n```\nverdict follows: {\"a\": 1}"
	require.Equal(t, `{"a": 1}`, ExtractJSON(content))
}

func TestParseValidationOutputWellFormed(t *testing.T) {
	output, warnings, err := ParseValidationOutput(wellFormedResponse, testLimits)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, 80.0, output.OverallScore)
	require.Equal(t, 30.0, output.ScoreBreakdown["clarity"].Score)
	require.Equal(t, "Split the second section.", output.DetailedFeedback.Suggestion)
}

func TestParseValidationOutputMissingCriterion(t *testing.T) {
	response := `{
	  "overallScore": 30,
	  "scoreBreakdown": {"clarity": {"score": 30, "explanation": "ok"}},
	  "detailedFeedback": {"strengths": [], "weaknesses": [], "suggestion": "none"}
	}`

	_, _, err := ParseValidationOutput(response, testLimits)
	require.ErrorIs(t, err, ErrParse)
	require.Contains(t, err.Error(), "accuracy")
}

func TestParseValidationOutputMissingRequiredKey(t *testing.T) {
	response := `{
	  "overallScore": 30,
	  "scoreBreakdown": {
	    "clarity": {"score": 20, "explanation": "ok"},
	    "accuracy": {"score": 10, "explanation": "ok"}
	  }
	}`

	_, _, err := ParseValidationOutput(response, testLimits)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseValidationOutputNotJSON(t *testing.T) {
	_, _, err := ParseValidationOutput("I refuse to answer in JSON.", testLimits)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseValidationOutputClampsOutOfRange(t *testing.T) {
	response := `{
	  "overallScore": 110,
	  "scoreBreakdown": {
	    "clarity": {"score": 45, "explanation": "too generous"},
	    "accuracy": {"score": -5, "explanation": "too harsh"}
	  },
	  "detailedFeedback": {"strengths": [], "weaknesses": [], "suggestion": "n/a"}
	}`

	output, warnings, err := ParseValidationOutput(response, testLimits)
	require.NoError(t, err)
	require.Len(t, warnings, 3)
	require.Equal(t, 40.0, output.ScoreBreakdown["clarity"].Score)
	require.Equal(t, 0.0, output.ScoreBreakdown["accuracy"].Score)
	require.Equal(t, 40.0, output.OverallScore)
}

func TestParseValidationOutputRecomputesOverall(t *testing.T) {
	response := `{
	  "overallScore": 99,
	  "scoreBreakdown": {
	    "clarity": {"score": 30, "explanation": "ok"},
	    "accuracy": {"score": 50, "explanation": "ok"}
	  },
	  "detailedFeedback": {"strengths": [], "weaknesses": [], "suggestion": "n/a"}
	}`

	output, warnings, err := ParseValidationOutput(response, testLimits)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	require.Equal(t, 80.0, output.OverallScore)
}

func TestParseValidationOutputDiscardsUnknownCriteria(t *testing.T) {
	response := `{
	  "overallScore": 80,
	  "scoreBreakdown": {
	    "clarity": {"score": 30, "explanation": "ok"},
	    "accuracy": {"score": 50, "explanation": "ok"},
	    "vibes": {"score": 100, "explanation": "immaculate"}
	  },
	  "detailedFeedback": {"strengths": [], "weaknesses": [], "suggestion": "n/a"}
	}`

	output, warnings, err := ParseValidationOutput(response, testLimits)
	require.NoError(t, err)
	require.NotContains(t, output.ScoreBreakdown, "vibes")
	require.Equal(t, 80.0, output.OverallScore)
	require.NotEmpty(t, warnings)
}
