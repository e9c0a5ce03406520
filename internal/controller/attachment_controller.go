package controller

import (
	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ListByNote(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type attachmentController struct {
	service service.IAttachmentService
}

func NewAttachmentController(service service.IAttachmentService) IAttachmentController {
	return &attachmentController{service: service}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/attachment/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("note/:noteId", c.ListByNote)
	h.Delete(":id", c.Delete)
}

func (c *attachmentController) Create(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var req dto.CreateAttachmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Attachment created", res))
}

func (c *attachmentController) ListByNote(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	res, err := c.service.ListByNote(ctx.Context(), userId, noteId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note attachments", res))
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attachment id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Attachment deleted", nil))
}
