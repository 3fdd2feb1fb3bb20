package handlers

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/database"
	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	moduleCount int
}

func NewHealthHandler(moduleCount int) *HealthHandler {
	return &HealthHandler{moduleCount: moduleCount}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
		ModuleCount: h.moduleCount,
	})
}
