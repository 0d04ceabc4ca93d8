package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// EnsureMatchID rejects requests whose :matchId parameter is not a UUID and
// stores the canonical id in Locals("matchID").
func EnsureMatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("matchID") != nil {
			return c.Next()
		}

		raw := c.Params("matchId")
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Debugf("rejecting match id %q: %v", raw, err)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "match not found",
				"kind":  "MatchNotFound",
			})
		}

		c.Locals("matchID", id.String())
		return c.Next()
	}
}

// MatchID returns the id stored by EnsureMatchID.
func MatchID(c *fiber.Ctx) string {
	id, _ := c.Locals("matchID").(string)
	return id
}
