package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"time"

	"ai-noteflow-be/internal/dto"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/pkg/serverutils"
	"ai-noteflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// enhanceTimeout bounds one full enhancement, including the upstream stream.
const enhanceTimeout = 5 * time.Minute

type IEnhanceController interface {
	RegisterRoutes(r fiber.Router)
	Enhance(ctx *fiber.Ctx) error
}

type enhanceController struct {
	service service.IEnhanceService
	log     logger.ILogger
}

func NewEnhanceController(service service.IEnhanceService, log logger.ILogger) IEnhanceController {
	return &enhanceController{
		service: service,
		log:     log,
	}
}

func (c *enhanceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":id/enhance", c.Enhance)
}

// Enhance streams the AI enhancement back as server-sent events. Every frame
// is one "data: <json>\n\n" record; the final frame has type "done" or
// "error".
func (c *enhanceController) Enhance(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(serverutils.UserID(ctx))

	noteId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	var req dto.EnhanceNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The fiber request context dies with the handler; the stream runs on
		// its own deadline.
		streamCtx, cancel := context.WithTimeout(context.Background(), enhanceTimeout)
		defer cancel()

		emit := func(event dto.EnhanceStreamEvent) error {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if _, err := w.WriteString("data: " + string(payload) + "\n\n"); err != nil {
				return err
			}
			return w.Flush()
		}

		if err := c.service.Enhance(streamCtx, userId, noteId, &req, emit); err != nil {
			c.log.Error("enhance", "Enhancement failed", map[string]interface{}{
				"note_id": noteId.String(),
				"error":   err.Error(),
			})
			_ = emit(dto.EnhanceStreamEvent{Type: dto.EnhanceEventError, Message: err.Error()})
		}
	}))

	return nil
}
