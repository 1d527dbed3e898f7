package api

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	instance := validator.New()
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return instance
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// bindJSON parses the request body into payload and runs its validate tags.
// It writes the 400 response itself and reports false when the payload is
// rejected.
func bindJSON(c *fiber.Ctx, payload interface{}) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		return false, apiError(c, fiber.StatusBadRequest, "invalid json payload")
	}
	if err := validate.Struct(payload); err != nil {
		return false, apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return fmt.Sprintf("invalid %s", fieldErrors[0].Field())
	}
	return "invalid payload"
}

func internalError(c *fiber.Ctx, scope string, err error) error {
	log.Printf("api: %s failed: %v", scope, err)
	return apiError(c, fiber.StatusInternalServerError, scope+" failed")
}
