package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authClient *services.AuthClient
}

func NewAuthHandler(authClient *services.AuthClient) *AuthHandler {
	return &AuthHandler{authClient: authClient}
}

// Login handles POST /api/auth/login by delegating to the hosted auth service.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgInvalidBody})
	}
	req.Email = strings.TrimSpace(req.Email)

	if verr := services.ValidateLogin(&req); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Message})
	}

	resp, err := h.authClient.SignInWithPassword(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid email or password"})
		case errors.Is(err, services.ErrAuthNotConfigured):
			slog.Error("login attempted without auth configuration", "action", "auth.login")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Authentication service is not properly configured. Please contact support.",
			})
		}
		slog.Error("auth provider failure", "action", "auth.login", "error", err.Error())
		captureException(c, err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "Authentication service unavailable"})
	}

	return c.JSON(resp)
}
