package handlers

import (
	"coop-console/internal/config"
	"coop-console/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthCheck reports that the console is up. The API is not probed; pages
// surface API failures themselves.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	return response.Success(c, "Console is running", fiber.Map{
		"mode":    h.cfg.AppMode,
		"api":     h.cfg.API.BaseURL,
		"tabMode": h.cfg.Views.TabMode,
	})
}
