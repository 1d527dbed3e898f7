package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/risk"
)

func (handler *Handler) DiseaseRisks(c *fiber.Ctx) error {
	results, err := handler.observationService.AssessSelected()
	if err != nil {
		return internalError(c, "assess diseases", err)
	}
	return c.JSON(fiber.Map{"diseases": results})
}

func (handler *Handler) DiseaseRisk(c *fiber.Ctx) error {
	disease, err := risk.ParseDisease(strings.TrimSpace(c.Params("disease")))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "unknown disease")
	}

	result, err := handler.observationService.AssessDisease(disease)
	if errors.Is(err, risk.ErrUnknownDisease) {
		return apiError(c, fiber.StatusNotFound, "unknown disease")
	}
	if err != nil {
		return internalError(c, "assess disease", err)
	}
	return c.JSON(result)
}

func (handler *Handler) ProdromalRisk(c *fiber.Ctx) error {
	report, err := handler.observationService.Prodromal()
	if err != nil {
		return internalError(c, "prodromal prediction", err)
	}
	return c.JSON(report)
}

func (handler *Handler) UVRisk(c *fiber.Ctx) error {
	payload := uvPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}
	forecast, err := payload.forecast()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	prediction, err := handler.observationService.PredictUV(forecast, payload.ExposureMinutes)
	if err != nil {
		return internalError(c, "uv prediction", err)
	}
	return c.JSON(prediction)
}

// DailyIndex blends the available risk components. The optional environment
// query parameter is an externally computed 0-100 weather score.
func (handler *Handler) DailyIndex(c *fiber.Ctx) error {
	var environment *float64
	if raw := strings.TrimSpace(c.Query("environment")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid environment score")
		}
		environment = &value
	}

	index, err := handler.indexService.Today(handler.now(), environment)
	if err != nil {
		return internalError(c, "daily index", err)
	}
	return c.JSON(index)
}
