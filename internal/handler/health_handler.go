package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/eduforge/crosscheck/internal/config"
	"github.com/eduforge/crosscheck/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	ProviderA   string    `json:"providerA"`
	ProviderB   string    `json:"providerB"`
}

// HealthCheck returns a handler that reports application health information,
// including which provider each engine slot resolves to.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			ProviderA:   cfg.ProviderAName(),
			ProviderB:   cfg.ProviderBName(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
