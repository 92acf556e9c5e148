package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"visapath/visa-advisor/internal/models"
)

type HealthHandler struct {
	provider string
	model    string
}

func NewHealthHandler(provider, model string) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		model:    model,
	}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:   "healthy",
		Provider: h.provider,
		Model:    h.model,
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
}
