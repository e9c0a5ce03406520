package controller

import (
	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITranscriptController interface {
	RegisterRoutes(r fiber.Router)
	Extract(ctx *fiber.Ctx) error
}

type transcriptController struct {
	service service.ITranscriptService
}

func NewTranscriptController(service service.ITranscriptService) ITranscriptController {
	return &transcriptController{service: service}
}

func (c *transcriptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transcript/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("extract", c.Extract)
}

func (c *transcriptController) Extract(ctx *fiber.Ctx) error {
	var req dto.ExtractTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Extract(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript extracted", res))
}
