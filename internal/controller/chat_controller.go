package controller

import (
	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("session", c.ListSessions)
	h.Get("session/:id/messages", c.ListMessages)
	h.Post("message", c.SendMessage)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var req dto.CreateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.service.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat session created", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	res, err := c.service.ListSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat sessions", res))
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.ListMessages(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}
