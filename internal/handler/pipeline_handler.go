package handler

import (
	"os"

	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	internalWS "github.com/besmartbusiness/lawyer-app/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PipelineHandler exposes the websocket endpoint that streams drafting and
// dictation events to the client.
type PipelineHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewPipelineHandler(hub *internalWS.Hub, log logger.ILogger) *PipelineHandler {
	return &PipelineHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs authenticates the handshake and upgrades the connection. Browsers
// cannot set headers on websocket requests, so the token may arrive as a
// query parameter instead.
func (h *PipelineHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("PipelineHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	ownerIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	ownerID, err := uuid.Parse(ownerIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(h.hub, conn, ownerID)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *PipelineHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/drafting", h.ServeWs)
}
