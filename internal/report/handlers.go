package report

import (
	"errors"

	"github.com/cdktrenggalek/sihutan-backend/internal/authctx"
	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WorkflowHandlers exposes the shared transition endpoints. Every report
// module mounts the same handlers with its own Workflow; only the
// permission strings differ between modules.
type WorkflowHandlers struct {
	wf *Workflow
}

func NewWorkflowHandlers(wf *Workflow) *WorkflowHandlers {
	return &WorkflowHandlers{wf: wf}
}

type rejectRequest struct {
	Note string `json:"note"`
}

type bulkRequest struct {
	IDs    []uuid.UUID `json:"ids"`
	Action string      `json:"action"`
	Note   string      `json:"note"`
}

func (h *WorkflowHandlers) Submit(c *fiber.Ctx) error {
	return h.apply(c, workflow.ActionSubmit, "")
}

func (h *WorkflowHandlers) Approve(c *fiber.Ctx) error {
	return h.apply(c, workflow.ActionApprove, "")
}

func (h *WorkflowHandlers) Reject(c *fiber.Ctx) error {
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	return h.apply(c, workflow.ActionReject, req.Note)
}

func (h *WorkflowHandlers) Delete(c *fiber.Ctx) error {
	return h.apply(c, workflow.ActionDelete, "")
}

func (h *WorkflowHandlers) apply(c *fiber.Ctx, action workflow.Action, note string) error {
	actor, err := authctx.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid record ID"})
	}

	if err := h.wf.Apply(id, action, actor, note); err != nil {
		return TransitionErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"id": id, "action": string(action), "message": "ok"})
}

// Bulk applies one action to many ids. The response always carries the
// full per-id outcome; partial failure is still a 200.
func (h *WorkflowHandlers) Bulk(c *fiber.Ctx) error {
	actor, err := authctx.GetActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req bulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if len(req.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "ids is required"})
	}
	action := workflow.Action(req.Action)
	if !action.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Unknown action: " + req.Action})
	}

	result := h.wf.ApplyBulk(req.IDs, action, actor, req.Note)
	return c.JSON(result)
}

// TransitionErrorResponse maps engine errors to status codes so every
// module reports workflow failures identically.
func TransitionErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Record not found"})
	case errors.Is(err, workflow.ErrWrongState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, workflow.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, workflow.ErrNoteRequired), errors.Is(err, workflow.ErrUnknownAction):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to apply workflow action"})
	}
}
