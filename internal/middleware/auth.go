package middleware

import (
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminTokenHeader = "X-Admin-Token"
	localsAdminToken = "admin_token_ok"
)

// JWTProtected verifies bearer tokens issued by the hosted auth service.
// Requests carrying a valid admin token skip JWT verification.
func JWTProtected(cfg *config.Config) fiber.Handler {
	unauthorized := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Unauthorized: invalid or expired token",
		})
	}

	if cfg.AuthJWTSecret == "" {
		return func(c *fiber.Ctx) error {
			if adminTokenValid(c, cfg.AdminTokenHash) {
				return c.Next()
			}
			return unauthorized(c)
		}
	}

	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS256.Alg(), Key: []byte(cfg.AuthJWTSecret)},
		Filter: func(c *fiber.Ctx) bool {
			return adminTokenValid(c, cfg.AdminTokenHash)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// adminTokenValid compares the X-Admin-Token header against the configured
// bcrypt hash and caches the result on the request.
func adminTokenValid(c *fiber.Ctx, hash string) bool {
	if ok, seen := c.Locals(localsAdminToken).(bool); seen {
		return ok
	}
	token := c.Get(AdminTokenHeader)
	ok := hash != "" && token != "" &&
		bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
	c.Locals(localsAdminToken, ok)
	return ok
}
