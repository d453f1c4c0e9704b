package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler accepts a nil db when the store is not configured.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "not configured"
	if h.db != nil {
		dbStatus = "ok"
		if err := database.Ping(c.UserContext(), h.db); err != nil {
			dbStatus = "unhealthy"
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:          "ok",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		DB:              dbStatus,
		StoreConfigured: h.db != nil,
	})
}
