package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to websocket endpoints are real upgrade
// attempts for a known match id. It must run after EnsureMatchID.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		matchID := MatchID(c)
		if matchID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "match ID is required",
				"kind":  "BadRequest",
			})
		}

		// The connection context differs from the upgrade context, so the id
		// is carried over in locals.
		c.Locals("wsMatchID", matchID)
		return c.Next()
	}
}
