package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/services"
)

func (handler *Handler) ListObservations(c *fiber.Ctx) error {
	observations, err := handler.observationService.History()
	if err != nil {
		return internalError(c, "load observations", err)
	}
	responses := make([]observationResponse, 0, len(observations))
	for _, observation := range observations {
		responses = append(responses, newObservationResponse(observation))
	}
	return c.JSON(fiber.Map{"observations": responses})
}

func (handler *Handler) LatestObservation(c *fiber.Ctx) error {
	observation, found, err := handler.observationService.Latest()
	if err != nil {
		return internalError(c, "load observation", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no observation recorded")
	}
	return c.JSON(newObservationResponse(observation))
}

func (handler *Handler) GetObservation(c *fiber.Ctx) error {
	day, err := services.ParseDayParam(strings.TrimSpace(c.Params("date")), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	observation, found, err := handler.observationService.FindByDate(day)
	if err != nil {
		return internalError(c, "load observation", err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no observation recorded")
	}
	return c.JSON(newObservationResponse(observation))
}

// PutObservation stores the observation of one calendar day, replacing any
// earlier entry for that day.
func (handler *Handler) PutObservation(c *fiber.Ctx) error {
	day, err := services.ParseDayParam(strings.TrimSpace(c.Params("date")), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if day.After(services.StorageDay(handler.now(), handler.location)) {
		return apiError(c, fiber.StatusBadRequest, "date cannot be in the future")
	}

	payload := observationPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}
	observation, err := payload.observation(day)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	saved, err := handler.observationService.Save(observation, handler.now())
	if err != nil {
		return internalError(c, "save observation", err)
	}
	return c.JSON(newObservationResponse(saved))
}

func (handler *Handler) DeleteObservation(c *fiber.Ctx) error {
	day, err := services.ParseDayParam(strings.TrimSpace(c.Params("date")), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	deleted, err := handler.observationService.Delete(day)
	if err != nil {
		return internalError(c, "delete observation", err)
	}
	if !deleted {
		return apiError(c, fiber.StatusNotFound, "no observation recorded")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
