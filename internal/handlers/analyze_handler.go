package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visapath/visa-advisor/internal/models"
	"visapath/visa-advisor/internal/services"
)

type AnalyzeHandler struct {
	advisor services.AdvisorService
	logger  *zap.Logger
}

func NewAnalyzeHandler(advisor services.AdvisorService, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		advisor: advisor,
		logger:  logger.Named("analyze_handler"),
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var profile models.ProfileFields

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.AnalysisResponse{
			Success: false,
			Error:   "Invalid request payload",
		})
	}

	if err := json.Unmarshal(body, &profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.AnalysisResponse{
			Success: false,
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
	}

	analysis, err := h.advisor.AnalyzeProfile(c.UserContext(), profile)
	if err != nil {
		h.logger.Error("visa analysis failed", zap.Error(err))

		switch {
		case errors.Is(err, services.ErrServiceExhausted):
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.AnalysisResponse{
				Success: false,
				Error:   exhaustedMessage(err),
			})
		case errors.Is(err, services.ErrMalformedResponse):
			return c.Status(fiber.StatusInternalServerError).JSON(models.AnalysisResponse{
				Success: false,
				Error:   "Failed to parse AI response. Please try again.",
				Details: malformedDetails(err),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.AnalysisResponse{
				Success: false,
				Error:   fmt.Sprintf("An error occurred: %v", err),
			})
		}
	}

	return c.JSON(models.AnalysisResponse{
		Success:  true,
		Analysis: analysis,
	})
}
