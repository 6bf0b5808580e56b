package handlers

import (
	"log"

	"amparo/internal/realtime"
	"amparo/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type WebsocketHandler struct {
	hub *realtime.Hub
}

func NewWebsocketHandler(hub *realtime.Hub) *WebsocketHandler {
	return &WebsocketHandler{hub: hub}
}

// Upgrade gates the route to websocket upgrade requests and authenticates
// the session token from the query string, since browsers cannot set
// headers on websocket dials.
func (h *WebsocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
	}

	_, claims, err := utils.ParseToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals("wsUserID", claims.UserID)
	return c.Next()
}

// Serve keeps the connection registered in the hub until the client
// disconnects. Inbound messages are drained and ignored; this channel is
// server push only.
func (h *WebsocketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("wsUserID").(uint)
		if !ok {
			conn.Close()
			return
		}

		h.hub.Register(userID, conn)
		defer func() {
			h.hub.Unregister(userID, conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Printf("websocket: user %d disconnected: %v", userID, err)
				return
			}
		}
	})
}
