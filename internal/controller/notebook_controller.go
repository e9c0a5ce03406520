package controller

import (
	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type notebookController struct {
	service service.INotebookService
}

func NewNotebookController(service service.INotebookService) INotebookController {
	return &notebookController{service: service}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebook/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var req dto.CreateNotebookRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Notebook created", res))
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	res, err := c.service.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all notebooks", res))
}

func (c *notebookController) Update(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	var req dto.UpdateNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.Update(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notebook updated", nil))
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notebook deleted", nil))
}
