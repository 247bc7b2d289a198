// Package prompt renders rubric prompts for provider calls. Rendering is a
// pure transformation: recognised [PLACEHOLDER] tokens are substituted
// literally and unresolved tokens are left verbatim, so a malformed template
// stays visibly malformed downstream.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eduforge/crosscheck/internal/rubric"
	"github.com/eduforge/crosscheck/pkg/ai"
)

// Vars maps placeholder names (without brackets) to replacement values.
type Vars map[string]string

// Input carries the request-scoped material a base prompt is built from.
// Template optionally overrides the built-in template for the content type;
// it is treated as an opaque string owned by external configuration.
type Input struct {
	Topic             string
	TopicsTaughtSoFar []string
	Difficulty        string
	Guidelines        string
	Content           string
	Template          string
}

// Render substitutes each recognised placeholder with its value. Tokens with
// no matching entry in vars survive untouched. All substitutions happen in a
// single left-to-right pass, so a token appearing inside a substituted value
// is never rewritten and rendering the same input always yields the same
// output.
func Render(template string, vars Vars) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "["+key+"]", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// BuildBase renders the round-1 prompt for the active rubric.
func BuildBase(spec rubric.Spec, in Input) string {
	template := in.Template
	if template == "" {
		template = defaultTemplate(spec.ContentType)
	}

	guidelines := strings.TrimSpace(in.Guidelines)
	if guidelines == "" {
		guidelines = "(none provided)"
	}

	return Render(template, Vars{
		"CONTENT_TYPE":         string(spec.ContentType),
		"TOPIC":                in.Topic,
		"TOPICS_TAUGHT_SO_FAR": strings.Join(in.TopicsTaughtSoFar, ", "),
		"DIFFICULTY":           in.Difficulty,
		"GUIDELINES":           guidelines,
		"RUBRIC":               renderRubric(spec),
		"OUTPUT_CONTRACT":      renderContract(spec),
		"CONTENT":              in.Content,
	})
}

// AppendPeerAssessment produces the round-2 prompt: the base prompt plus the
// peer provider's full round-1 verdict in a delimited section.
func AppendPeerAssessment(base, peerProvider string, peer ai.ValidationOutput) string {
	encoded, err := json.MarshalIndent(peer, "", "  ")
	if err != nil {
		encoded = []byte("(peer assessment unavailable)")
	}

	var builder strings.Builder
	builder.WriteString(base)
	builder.WriteString("\n\n----- PEER ASSESSMENT -----\n")
	builder.WriteString(fmt.Sprintf("A second independent reviewer (%q) scored the same content in a previous round:\n", peerProvider))
	builder.Write(encoded)
	builder.WriteString("\n----- END PEER ASSESSMENT -----\n\n")
	builder.WriteString("Weigh the peer assessment where its reasoning is convincing, ")
	builder.WriteString("but reach your own independent conclusion and justify any disagreement per criterion. ")
	builder.WriteString("Respond with a complete JSON object in the mandated shape.")
	return builder.String()
}

func renderRubric(spec rubric.Spec) string {
	var builder strings.Builder
	for _, criterion := range spec.Criteria {
		builder.WriteString(fmt.Sprintf("- %s (max %.0f points): %s\n", criterion.Key, criterion.MaxPoints, criterion.Description))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func renderContract(spec rubric.Spec) string {
	var builder strings.Builder
	builder.WriteString("{\n  \"overallScore\": <number 0-100>,\n  \"scoreBreakdown\": {\n")
	for i, criterion := range spec.Criteria {
		builder.WriteString(fmt.Sprintf("    %q: {\"score\": <number 0-%.0f>, \"explanation\": <string>}", criterion.Key, criterion.MaxPoints))
		if i < len(spec.Criteria)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString("  },\n")
	builder.WriteString("  \"detailedFeedback\": {\"strengths\": [<string>], \"weaknesses\": [<string>], \"suggestion\": <string>}\n}")
	return builder.String()
}
