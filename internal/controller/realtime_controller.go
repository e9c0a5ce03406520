package controller

import (
	"os"

	"ai-noteflow-be/internal/pkg/logger"
	internalWS "ai-noteflow-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IRealtimeController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
}

type realtimeController struct {
	hub *internalWS.Hub
	log logger.ILogger
}

func NewRealtimeController(hub *internalWS.Hub, log logger.ILogger) IRealtimeController {
	return &realtimeController{
		hub: hub,
		log: log,
	}
}

func (c *realtimeController) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", c.ServeWs)
}

// ServeWs authenticates via a token query parameter (browsers cannot set an
// Authorization header on a websocket upgrade) and hands the connection to
// the hub.
func (c *realtimeController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
	}
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.log.Info("Realtime", "WebSocket session started", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(c.hub, conn, userID)
			c.log.Info("Realtime", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
