package handlers

import (
	"strconv"

	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/cdktrenggalek/sihutan-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetOverview is public: the agency publishes finalized figures.
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.Query("year", "0"))

	overview, err := h.service.Overview(year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to build dashboard"})
	}
	return c.JSON(overview)
}
