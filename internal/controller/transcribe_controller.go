package controller

import (
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITranscribeController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
}

type transcribeController struct {
	service service.ITranscribeService
}

func NewTranscribeController(service service.ITranscribeService) ITranscribeController {
	return &transcribeController{service: service}
}

func (c *transcribeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transcribe/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Transcribe)
}

func (c *transcribeController) Transcribe(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Audio file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot read audio file")
	}
	defer file.Close()

	language := ctx.FormValue("language")

	res, err := c.service.Transcribe(ctx.Context(), fileHeader.Filename, file, language)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audio transcribed", res))
}
