package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CRCRCRCRCRC/officialcrcrcyt-sub000/internal/middleware"
)

// WSUpgrade gates the websocket route: the session middleware has already run,
// so we only need to confirm this is a real upgrade request.
func (h *Handler) WSUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// WSHandler hands the upgraded connection to the hub for the push stream.
// Locals survive the upgrade, so the account id set by SessionAuth is
// available on the connection.
func (h *Handler) WSHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		accountID, ok := conn.Locals(middleware.AccountIDKey).(uuid.UUID)
		if !ok || accountID == uuid.Nil {
			_ = conn.Close()
			return
		}
		h.hub.Serve(accountID, conn)
	})
}
