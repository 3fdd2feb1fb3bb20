package kayu

import (
	"errors"
	"strconv"

	"github.com/cdktrenggalek/sihutan-backend/internal/authctx"
	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	actor, err := authctx.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	if err := workflow.CanCreate(actor, "kayu"); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: "Missing permission: kayu.create"})
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	rec, err := h.service.Create(actor, &req)
	if err != nil {
		return domainErrorResponse(c, err, "Failed to create report")
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *Handler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	year, _ := strconv.Atoi(c.Query("year", "0"))
	month, _ := strconv.Atoi(c.Query("month", "0"))
	status := c.Query("status", "")

	resp, err := h.service.List(status, year, month, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch reports"})
	}
	return c.JSON(resp)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid report ID"})
	}

	rec, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch report"})
	}
	return c.JSON(rec)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	actor, err := authctx.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid report ID"})
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	rec, err := h.service.Update(id, actor, &req)
	if err != nil {
		return domainErrorResponse(c, err, "Failed to update report")
	}
	return c.JSON(rec)
}

func domainErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrUnknownCommodity), errors.Is(err, ErrUnknownDistrict),
		errors.Is(err, ErrVolumeOutOfRange), errors.Is(err, ErrValueOutOfRange),
		errors.Is(err, report.ErrInvalidMonth), errors.Is(err, report.ErrInvalidYear):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, workflow.ErrNotFound), errors.Is(err, workflow.ErrWrongState),
		errors.Is(err, workflow.ErrForbidden):
		return report.TransitionErrorResponse(c, err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: fallback})
	}
}
