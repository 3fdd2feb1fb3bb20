package handlers

import (
	"strconv"

	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/gofiber/fiber/v2"
)

type RegionHandler struct {
	geo *geography.Service
}

func NewRegionHandler(geo *geography.Service) *RegionHandler {
	return &RegionHandler{geo: geo}
}

// ListRegencies returns the working-area regencies for form dropdowns.
func (h *RegionHandler) ListRegencies(c *fiber.Ctx) error {
	regencies, err := h.geo.Regencies()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch regencies"})
	}
	return c.JSON(fiber.Map{"regencies": regencies})
}

// ListDistricts returns the districts of one regency.
func (h *RegionHandler) ListDistricts(c *fiber.Ctx) error {
	regencyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid regency ID"})
	}
	districts, err := h.geo.Districts(uint(regencyID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch districts"})
	}
	return c.JSON(fiber.Map{"districts": districts})
}
