package middleware

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminRequired admits a request when any of these hold:
// 1. X-Admin-Token matches ADMIN_TOKEN_HASH
// 2. the JWT email or sub is on the ADMIN_EMAILS / ADMIN_USER_IDS lists
// 3. the JWT app_metadata.role is "admin"
//
// It must run after JWTProtected.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(strings.ToLower(cfg.AdminEmails))
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if adminTokenValid(c, cfg.AdminTokenHash) {
			return c.Next()
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid claims"})
		}

		email, _ := claims["email"].(string)
		sub, _ := claims["sub"].(string)

		if contains(adminEmails, strings.ToLower(email)) || contains(adminUserIDs, sub) {
			return c.Next()
		}
		if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
			if role, _ := meta["role"].(string); role == "admin" {
				return c.Next()
			}
		}

		slog.Warn("admin access denied", "action", "admin.access", "sub", sub, "path", c.Path())
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Admin access required"})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	if val == "" {
		return false
	}
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
