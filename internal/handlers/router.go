package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Resume  *ResumeHandler
	Analyze *AnalyzeHandler
	Health  *HealthHandler
}

// SetupRoutes registers the API on app. staticDir, when set, is served at "/".
func SetupRoutes(app *fiber.App, h Handlers, staticDir string) {
	api := app.Group("/api/v1")
	api.Get("/health", h.Health.HandleHealth)

	app.Post("/parse-resume", h.Resume.HandleParseResume)
	app.Post("/analyze", h.Analyze.HandleAnalyze)

	if staticDir != "" {
		app.Static("/", staticDir, fiber.Static{
			Index: "index.html",
		})
	}
}
