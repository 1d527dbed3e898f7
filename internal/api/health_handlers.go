package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/db"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	status, err := db.Status(handler.db)
	if err != nil {
		return internalError(c, "health check", err)
	}
	if len(status.Pending) > 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "migrating", "migrations": status})
	}
	return c.JSON(fiber.Map{"status": "ok", "migrations": status})
}
