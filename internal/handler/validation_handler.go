package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduforge/crosscheck/internal/dto"
	"github.com/eduforge/crosscheck/internal/service"
	"github.com/eduforge/crosscheck/internal/utils"
)

// ValidationHandler wires the content validation HTTP route.
type ValidationHandler struct {
	service service.ValidationService
	logger  zerolog.Logger
}

// NewValidationHandler constructs the handler.
func NewValidationHandler(service service.ValidationService, logger zerolog.Logger) *ValidationHandler {
	return &ValidationHandler{
		service: service,
		logger:  logger.With().Str("component", "validation_handler").Logger(),
	}
}

// Register attaches validation endpoints to the router group.
func (h *ValidationHandler) Register(router fiber.Router) {
	router.Post("", h.validate)
}

func (h *ValidationHandler) validate(c *fiber.Ctx) error {
	var payload dto.ValidationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Validate(c.Context(), payload)
	if err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrUnknownContentType) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "content validated", response)
}

func (h *ValidationHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("validation request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
