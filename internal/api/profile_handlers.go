package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.profileService.Get()
	if err != nil {
		return internalError(c, "load profile", err)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	payload := profilePayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}

	profile, err := handler.profileService.Update(payload.SelectedDiseases, payload.SeverityProfile)
	switch {
	case errors.Is(err, services.ErrInvalidDiseaseSelected):
		return apiError(c, fiber.StatusBadRequest, "invalid disease selection")
	case errors.Is(err, services.ErrInvalidSeverityProfile):
		return apiError(c, fiber.StatusBadRequest, "invalid severity profile")
	case err != nil:
		return internalError(c, "save profile", err)
	}
	return c.JSON(profile)
}
