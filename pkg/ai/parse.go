package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// verdictSchema is the mandated wire contract for provider responses. Keys
// and point ceilings are rubric-specific, so the schema pins the shape and
// the per-criterion checks happen against the active limits.
const verdictSchema = `{
  "type": "object",
  "required": ["overallScore", "scoreBreakdown", "detailedFeedback"],
  "properties": {
    "overallScore": {"type": "number"},
    "scoreBreakdown": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["score", "explanation"],
        "properties": {
          "score": {"type": "number"},
          "explanation": {"type": "string"}
        }
      }
    },
    "detailedFeedback": {
      "type": "object",
      "required": ["strengths", "weaknesses", "suggestion"],
      "properties": {
        "strengths": {"type": "array", "items": {"type": "string"}},
        "weaknesses": {"type": "array", "items": {"type": "string"}},
        "suggestion": {"type": "string"}
      }
    }
  }
}`

var compiledVerdictSchema = jsonschema.MustCompileString("verdict.schema.json", verdictSchema)

// ExtractJSON locates the JSON object inside a model response, tolerating a
// surrounding fenced code block and conversational filler around it. The
// first fence whose body holds an object wins; fenced examples without one
// are skipped, and a response with no such fence falls back to a brace scan
// over the whole text.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)

	rest := content
	for {
		idx := strings.Index(rest, "```")
		if idx < 0 {
			break
		}
		rest = rest[idx+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		body := rest
		if end := strings.Index(rest, "```"); end >= 0 {
			body = rest[:end]
			rest = rest[end+3:]
		} else {
			rest = ""
		}
		if strings.ContainsRune(body, '{') {
			content = body
			break
		}
	}

	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// ParseValidationOutput validates a raw provider response against the
// mandated schema and the active rubric limits. Out-of-range scores are
// clamped with a warning; a response missing any required key or rubric
// criterion is rejected with ErrParse. The returned overall score is always
// the sum of the per-criterion scores.
func ParseValidationOutput(content string, limits []CriterionLimit) (ValidationOutput, []string, error) {
	raw := ExtractJSON(content)
	if raw == "" {
		return ValidationOutput{}, nil, fmt.Errorf("%w: no JSON object found in response", ErrParse)
	}

	var document interface{}
	if err := json.Unmarshal([]byte(raw), &document); err != nil {
		return ValidationOutput{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := compiledVerdictSchema.Validate(document); err != nil {
		return ValidationOutput{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var output ValidationOutput
	if err := json.Unmarshal([]byte(raw), &output); err != nil {
		return ValidationOutput{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var warnings []string
	breakdown := make(map[string]CriterionScore, len(limits))
	for _, limit := range limits {
		entry, ok := output.ScoreBreakdown[limit.Key]
		if !ok {
			return ValidationOutput{}, nil, fmt.Errorf("%w: missing criterion %q", ErrParse, limit.Key)
		}
		if entry.Score < 0 {
			warnings = append(warnings, fmt.Sprintf("criterion %s score %.1f clamped to 0", limit.Key, entry.Score))
			entry.Score = 0
		}
		if entry.Score > limit.Max {
			warnings = append(warnings, fmt.Sprintf("criterion %s score %.1f clamped to max %.0f", limit.Key, entry.Score, limit.Max))
			entry.Score = limit.Max
		}
		breakdown[limit.Key] = entry
	}

	for key := range output.ScoreBreakdown {
		if _, ok := breakdown[key]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown criterion %s discarded", key))
		}
	}

	total := 0.0
	for _, entry := range breakdown {
		total += entry.Score
	}
	if math.Abs(output.OverallScore-total) > 0.5 {
		warnings = append(warnings, fmt.Sprintf("reported overall %.1f replaced with criterion sum %.1f", output.OverallScore, total))
	}

	output.ScoreBreakdown = breakdown
	output.OverallScore = total
	if output.DetailedFeedback.Strengths == nil {
		output.DetailedFeedback.Strengths = []string{}
	}
	if output.DetailedFeedback.Weaknesses == nil {
		output.DetailedFeedback.Weaknesses = []string{}
	}

	return output, warnings, nil
}
