package routes

import (
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Candidate  *handlers.CandidateHandler
	Assessment *handlers.AssessmentHandler
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers, gatherer prometheus.Gatherer) {
	// Registration form (server-rendered)
	app.Get("/free-assessment", h.Assessment.Form)
	app.Post("/free-assessment", h.Assessment.Submit)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	api.Get("/health", h.Health.Check)

	// Sign-in is delegated to the hosted auth service
	api.Post("/auth/login", h.Auth.Login)

	// Public registration
	api.Post("/candidates", h.Candidate.Register)

	// Candidate listing requires a provider JWT or admin token, verified server-side
	api.Get("/candidates",
		middleware.JWTProtected(cfg),
		middleware.AdminRequired(cfg),
		h.Candidate.List,
	)
}
