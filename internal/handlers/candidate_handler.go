package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const (
	msgMissingFields  = "Missing required fields"
	msgInvalidEmail   = "Invalid email format"
	msgInvalidMobile  = "Invalid mobile number"
	msgDuplicateEmail = "This email is already registered"
	msgSaveFailed     = "Failed to save registration. Please try again."
	msgFetchFailed    = "Failed to fetch candidates"
	msgInternal       = "Internal server error"
	msgInvalidBody    = "Invalid request body"
	msgRegistrationOK = "Registration successful"
)

type CandidateHandler struct {
	service *services.RegistrationService
	metrics *metrics.Metrics
}

func NewCandidateHandler(service *services.RegistrationService, m *metrics.Metrics) *CandidateHandler {
	return &CandidateHandler{service: service, metrics: m}
}

// Register handles POST /api/candidates.
func (h *CandidateHandler) Register(c *fiber.Ctx) error {
	var req dto.CandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgInvalidBody})
	}

	candidate, err := h.service.Submit(c.UserContext(), services.RegistrationInput{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	})
	if err != nil {
		status, body := registrationErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			captureException(c, err)
		}
		return c.Status(status).JSON(body)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RegisterCandidateResponse{
		Success: true,
		Message: msgRegistrationOK,
		Data: dto.CandidateData{
			Name:   candidate.Name,
			Email:  candidate.Email,
			Mobile: candidate.MobileDigits,
		},
	})
}

// List handles GET /api/candidates. Routes must mount it behind admin auth.
func (h *CandidateHandler) List(c *fiber.Ctx) error {
	h.metrics.IncrementList()

	limit := c.QueryInt("limit", services.DefaultListLimit)
	offset := c.QueryInt("offset", 0)

	candidates, total, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		captureException(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgFetchFailed})
	}

	return c.JSON(dto.CandidateListResponse{
		Success:    true,
		Count:      total,
		Candidates: candidates,
	})
}

// registrationErrorResponse maps a registration failure to a status and body.
func registrationErrorResponse(err error) (int, dto.ErrorResponse) {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		switch {
		case verrs.AnyMissing():
			return fiber.StatusBadRequest, dto.ErrorResponse{Error: msgMissingFields}
		case verrs.Field("email") != nil:
			return fiber.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidEmail}
		default:
			return fiber.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidMobile}
		}
	}

	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return fiber.StatusConflict, dto.ErrorResponse{Error: msgDuplicateEmail}
	case errors.Is(err, services.ErrConfiguration):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: msgSaveFailed, Details: "store not provisioned"}
	case errors.Is(err, services.ErrPermission):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: msgSaveFailed, Details: "store permission denied"}
	case errors.Is(err, services.ErrTransientStore):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: msgSaveFailed, Details: "store unavailable"}
	}

	slog.Error("unclassified registration failure", "action", "candidate.register", "error", err.Error())
	return fiber.StatusInternalServerError, dto.ErrorResponse{Error: msgInternal}
}

func captureException(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}
