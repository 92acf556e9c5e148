package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visapath/visa-advisor/internal/models"
	"visapath/visa-advisor/internal/services"
)

type ResumeHandler struct {
	advisor     services.AdvisorService
	maxFileSize int64
	logger      *zap.Logger
}

func NewResumeHandler(
	advisor services.AdvisorService,
	maxFileSize int64,
	logger *zap.Logger,
) *ResumeHandler {
	return &ResumeHandler{
		advisor:     advisor,
		maxFileSize: maxFileSize,
		logger:      logger.Named("resume_handler"),
	}
}

// HandleParseResume handles POST /parse-resume
func (h *ResumeHandler) HandleParseResume(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	files, exists := form.File["resume"]
	if !exists || len(files) == 0 {
		// A file input submitted empty arrives as a plain value.
		if _, sent := form.Value["resume"]; sent {
			return badRequest(c, "No file selected")
		}
		return badRequest(c, "No file uploaded")
	}

	file := files[0]

	if strings.TrimSpace(file.Filename) == "" {
		return badRequest(c, "No file selected")
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return badRequest(c, "Only PDF files are supported")
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	src, err := file.Open()
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Could not read uploaded file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Could not read uploaded file", err)
	}

	fields, err := h.advisor.ParseResume(c.UserContext(), data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExtractionFailed):
			return h.fail(c, fiber.StatusInternalServerError, "Could not extract text from PDF", err)
		case errors.Is(err, services.ErrServiceExhausted):
			return h.fail(c, fiber.StatusServiceUnavailable, exhaustedMessage(err), err)
		case errors.Is(err, services.ErrMalformedResponse):
			return h.fail(c, fiber.StatusInternalServerError, "Could not parse resume", err)
		default:
			return h.fail(c, fiber.StatusInternalServerError, err.Error(), err)
		}
	}

	return c.JSON(models.ResumeResponse{
		Success: true,
		Data:    fields,
	})
}

func (h *ResumeHandler) fail(c *fiber.Ctx, status int, message string, err error) error {
	h.logger.Error("parse resume failed", zap.Int("status", status), zap.Error(err))
	return c.Status(status).JSON(models.ResumeResponse{
		Success: false,
		Error:   message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ResumeResponse{
		Success: false,
		Error:   message,
	})
}
