package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"github.com/terraincognita07/flarewatch/internal/services"
)

func (handler *Handler) ListFlares(c *fiber.Ctx) error {
	records, err := handler.lifestyleService.ListFlares()
	if err != nil {
		return internalError(c, "load flares", err)
	}
	return c.JSON(fiber.Map{"flares": records})
}

func (handler *Handler) CreateFlare(c *fiber.Ctx) error {
	payload := flarePayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}
	day, err := services.ParseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, err := handler.lifestyleService.AddFlare(lifestyle.FlareRecord{
		Date:         day,
		Severity:     payload.Severity,
		Symptoms:     payload.Symptoms,
		DurationDays: payload.DurationDays,
		Notes:        payload.Notes,
	}, handler.now())
	return handler.respondCreated(c, "save flare", record, err)
}

func (handler *Handler) DeleteFlare(c *fiber.Ctx) error {
	return handler.respondDeleted(c, "delete flare", handler.lifestyleService.DeleteFlare(recordIDParam(c)))
}

func (handler *Handler) ListStress(c *fiber.Ctx) error {
	records, err := handler.lifestyleService.ListStress()
	if err != nil {
		return internalError(c, "load stress", err)
	}
	return c.JSON(fiber.Map{"stress": records})
}

func (handler *Handler) CreateStress(c *fiber.Ctx) error {
	payload := stressPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}
	day, err := services.ParseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, err := handler.lifestyleService.AddStress(lifestyle.StressRecord{
		Date:  day,
		Level: payload.Level,
		Notes: payload.Notes,
	}, handler.now())
	return handler.respondCreated(c, "save stress", record, err)
}

func (handler *Handler) DeleteStress(c *fiber.Ctx) error {
	return handler.respondDeleted(c, "delete stress", handler.lifestyleService.DeleteStress(recordIDParam(c)))
}

func (handler *Handler) ListFood(c *fiber.Ctx) error {
	records, err := handler.lifestyleService.ListFood()
	if err != nil {
		return internalError(c, "load food", err)
	}
	return c.JSON(fiber.Map{"food": records})
}

func (handler *Handler) CreateFood(c *fiber.Ctx) error {
	payload := foodPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}
	entry, err := payload.record()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid timestamp")
	}

	record, err := handler.lifestyleService.AddFood(entry, handler.now())
	return handler.respondCreated(c, "save food", record, err)
}

func (handler *Handler) DeleteFood(c *fiber.Ctx) error {
	return handler.respondDeleted(c, "delete food", handler.lifestyleService.DeleteFood(recordIDParam(c)))
}

func (handler *Handler) ListSleep(c *fiber.Ctx) error {
	records, err := handler.lifestyleService.ListSleep()
	if err != nil {
		return internalError(c, "load sleep", err)
	}
	return c.JSON(fiber.Map{"sleep": records})
}

func (handler *Handler) CreateSleep(c *fiber.Ctx) error {
	payload := sleepPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}
	day, err := services.ParseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, err := handler.lifestyleService.AddSleep(lifestyle.SleepRecord{
		Date:     day,
		Hours:    payload.Hours,
		Quality:  payload.Quality,
		Bedtime:  payload.Bedtime,
		WakeTime: payload.WakeTime,
	}, handler.now())
	return handler.respondCreated(c, "save sleep", record, err)
}

func (handler *Handler) DeleteSleep(c *fiber.Ctx) error {
	return handler.respondDeleted(c, "delete sleep", handler.lifestyleService.DeleteSleep(recordIDParam(c)))
}

func (handler *Handler) LifestyleAnalysis(c *fiber.Ctx) error {
	report, err := handler.lifestyleService.Analysis(handler.now())
	if err != nil {
		return internalError(c, "lifestyle analysis", err)
	}
	return c.JSON(report)
}

func recordIDParam(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Params("id"))
}

func (handler *Handler) respondCreated(c *fiber.Ctx, scope string, record interface{}, err error) error {
	if errors.Is(err, services.ErrLifestyleInvalid) {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return internalError(c, scope, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) respondDeleted(c *fiber.Ctx, scope string, err error) error {
	if errors.Is(err, services.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "record not found")
	}
	if err != nil {
		return internalError(c, scope, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
