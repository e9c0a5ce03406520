package controller

import (
	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
}

type noteController struct {
	service service.INoteService
}

func NewNoteController(service service.INoteService) INoteController {
	return &noteController{service: service}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("search", c.SemanticSearch)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var req dto.CreateNoteRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Note created", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	res, err := c.service.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note detail", res))
}

func (c *noteController) GetAll(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var notebookId *uuid.UUID
	if raw := ctx.Query("notebook_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid notebook_id")
		}
		notebookId = &id
	}

	res, err := c.service.List(ctx.Context(), userId, notebookId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all notes", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note updated", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Note deleted", nil))
}

func (c *noteController) SemanticSearch(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var req dto.SemanticSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SemanticSearch(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
