package controller

import (
	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/entity"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAiConfigController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Set(ctx *fiber.Ctx) error
}

type aiConfigController struct {
	service service.IAiConfigService
}

func NewAiConfigController(service service.IAiConfigService) IAiConfigController {
	return &aiConfigController{service: service}
}

func (c *aiConfigController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/config/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Put("", c.Set)
}

func (c *aiConfigController) List(ctx *fiber.Ctx) error {
	category := ctx.Query("category", entity.AiConfigCategoryFeature)

	configs, err := c.service.ListByCategory(ctx.Context(), category)
	if err != nil {
		return err
	}

	res := make([]dto.AiConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		res = append(res, dto.AiConfigResponse{
			Key:       cfg.Key,
			Value:     cfg.Value,
			ValueType: cfg.ValueType,
			Category:  cfg.Category,
			UpdatedAt: cfg.UpdatedAt,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Configurations retrieved", res))
}

func (c *aiConfigController) Set(ctx *fiber.Ctx) error {
	var req dto.SetAiConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.Set(ctx.Context(), req.Key, req.Value, req.ValueType, req.Category); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Configuration saved", nil))
}
