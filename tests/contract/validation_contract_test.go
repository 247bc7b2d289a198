package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/eduforge/crosscheck/internal/dto"
	"github.com/eduforge/crosscheck/internal/engine"
	"github.com/eduforge/crosscheck/internal/handler"
	"github.com/eduforge/crosscheck/internal/preprocess"
	"github.com/eduforge/crosscheck/internal/rubric"
	"github.com/eduforge/crosscheck/pkg/ai"
)

type stubValidationService struct {
	response dto.ValidationResponse
}

func (s stubValidationService) Validate(context.Context, dto.ValidationRequest) (dto.ValidationResponse, error) {
	return s.response, nil
}

func sampleResponse(t *testing.T) dto.ValidationResponse {
	t.Helper()

	spec, err := rubric.SpecFor(rubric.ContentTypeAssignment)
	require.NoError(t, err)

	limits := spec.Limits()
	content := "# Fractions Quiz\n\nTen questions covering equivalent fractions."
	output := ai.Stub(content, limits)

	verdictA := ai.Verdict{Provider: ai.ProviderOpenAI, Output: output, Genuine: true}
	verdictB := ai.Verdict{Provider: ai.ProviderGemini, Output: output, Genuine: true}
	round := engine.RoundResults{A: verdictA, B: verdictB}

	finalScore := make(map[string]engine.CombinedCriterion, len(limits))
	finalFeedback := make(map[string]string, len(limits))
	overall := 0
	for _, limit := range limits {
		score := int(output.ScoreBreakdown[limit.Key].Score)
		finalScore[limit.Key] = engine.CombinedCriterion{
			Score:      score,
			Confidence: 1.0,
			Feedback:   output.ScoreBreakdown[limit.Key].Explanation,
			Issues:     []string{},
		}
		finalFeedback[limit.Key] = output.ScoreBreakdown[limit.Key].Explanation
		overall += score
	}

	result := engine.Result{
		Round1:           round,
		Round2:           round,
		FinalScore:       finalScore,
		FinalFeedback:    finalFeedback,
		OverallScore:     overall,
		Providers:        []string{ai.ProviderOpenAI, ai.ProviderGemini},
		ProcessingTimeMs: 2140,
	}

	metadata := preprocess.Metadata{
		OriginalLength: len(content),
		CleanedLength:  len(content),
		Headings:       1,
	}
	return dto.NewValidationResponse(result, []string{}, metadata)
}

func TestValidationResultContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "validation_result.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	serviceStub := stubValidationService{response: sampleResponse(t)}
	validationHandler := handler.NewValidationHandler(serviceStub, zerolog.Nop())

	app := fiber.New()
	validationHandler.Register(app.Group("/api/v1/validations"))

	payload := `{
		"content": "# Fractions Quiz\n\nTen questions covering equivalent fractions.",
		"topic": "Fractions",
		"topicsTaughtSoFar": ["Whole numbers", "Fractions"],
		"contentType": "ASSIGNMENT",
		"difficulty": "MEDIUM"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.True(t, envelope.Success)

	var payloadData interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &payloadData))
	require.NoError(t, schema.Validate(payloadData))
}
