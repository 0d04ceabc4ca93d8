package controller

import (
	"errors"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// classify maps an error to its HTTP status and wire kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		return fiber.StatusNotFound, "MatchNotFound"
	case errors.Is(err, errMalformedMessage):
		return fiber.StatusBadRequest, "BadRequest"
	case errors.Is(err, model.ErrInvalidCoordinate):
		return fiber.StatusBadRequest, model.Kind(err)
	case errors.Is(err, model.ErrMatchOver):
		return fiber.StatusGone, model.Kind(err)
	case model.IsFatal(err):
		return fiber.StatusInternalServerError, model.Kind(err)
	}
	if kind := model.Kind(err); kind != "Internal" {
		return fiber.StatusConflict, kind
	}
	return fiber.StatusInternalServerError, "Internal"
}

func sendError(c *fiber.Ctx, err error) error {
	status, kind := classify(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  kind,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
		"kind":  "BadRequest",
	})
}
