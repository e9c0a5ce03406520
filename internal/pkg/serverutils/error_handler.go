package serverutils

import (
	"errors"

	"ai-noteflow-be/internal/service"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/transcript"
	"ai-noteflow-be/pkg/transcription"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerMiddleware converts errors bubbled out of handlers into the
// shared JSON envelope, mapping known domain errors onto HTTP status codes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classifyError(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classifyError(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var upstream *completion.UpstreamError
	if errors.As(err, &upstream) {
		return fiber.StatusBadGateway, "AI provider returned an error"
	}

	switch {
	case errors.Is(err, service.ErrFeatureDisabled):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrEnhanceBusy):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, transcript.ErrInvalidURL):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, transcript.ErrNoTranscript):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, transcript.ErrToolUnavailable):
		return fiber.StatusServiceUnavailable, err.Error()
	case errors.Is(err, transcription.ErrNotConfigured):
		return fiber.StatusInternalServerError, err.Error()
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, "Resource not found"
	}

	return fiber.StatusInternalServerError, err.Error()
}
