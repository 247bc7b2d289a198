package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eduforge/crosscheck/internal/dto"
	"github.com/eduforge/crosscheck/internal/handler"
)

type mockValidationService struct {
	lastPayload dto.ValidationRequest
	response    dto.ValidationResponse
	err         error
}

func (m *mockValidationService) Validate(_ context.Context, payload dto.ValidationRequest) (dto.ValidationResponse, error) {
	m.lastPayload = payload
	if m.err != nil {
		return dto.ValidationResponse{}, m.err
	}
	return m.response, nil
}

func newValidationApp(svc *mockValidationService) *fiber.App {
	app := fiber.New()
	handler.NewValidationHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/validations"))
	return app
}

func validPayload() dto.ValidationRequest {
	return dto.ValidationRequest{
		Content:           "# Recursion\n\nA function that calls itself needs a base case.",
		Topic:             "recursion",
		TopicsTaughtSoFar: []string{"functions"},
		ContentType:       "LECTURE_NOTE",
	}
}

func TestValidationHandlerSuccess(t *testing.T) {
	svc := &mockValidationService{
		response: dto.ValidationResponse{
			OverallScore: 84,
			Providers:    []string{"openai", "gemini"},
			FinalScore: map[string]dto.CriterionResultResponse{
				"topicRelevance": {Score: 13, Confidence: 0.9, Feedback: "on topic", Issues: []string{}},
			},
		},
	}
	app := newValidationApp(svc)

	body, err := json.Marshal(validPayload())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                   `json:"success"`
		Data    dto.ValidationResponse `json:"data"`
		Message string                 `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "content validated", response.Message)
	require.Equal(t, 84, response.Data.OverallScore)
	require.Equal(t, "recursion", svc.lastPayload.Topic)
}

func TestValidationHandlerRejectsMalformedBody(t *testing.T) {
	svc := &mockValidationService{}
	app := newValidationApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestValidationHandlerContractViolationIsBadRequest(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	payload := validPayload()
	payload.ContentType = "ASSIGNMENT" // difficulty missing
	contractErr := validate.Struct(payload)
	require.Error(t, contractErr)

	svc := &mockValidationService{err: contractErr}
	app := newValidationApp(svc)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestValidationHandlerInternalError(t *testing.T) {
	svc := &mockValidationService{err: io.ErrUnexpectedEOF}
	app := newValidationApp(svc)

	body, err := json.Marshal(validPayload())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target))
}
