package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flarewatch/internal/models"
	"github.com/terraincognita07/flarewatch/internal/services"
)

type userResponse struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	MustChangePassword bool   `json:"must_change_password"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, MustChangePassword: user.MustChangePassword}
}

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	required, err := handler.authService.RequiresInitialSetup()
	if err != nil {
		return internalError(c, "setup status", err)
	}
	return c.JSON(fiber.Map{"requires_setup": required})
}

func (handler *Handler) Setup(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}

	user, err := handler.authService.SetupOwner(payload.Email, payload.Password)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "email and password are required")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrSetupAlreadyCompleted):
		return apiError(c, fiber.StatusConflict, "setup already completed")
	case err != nil:
		return internalError(c, "setup", err)
	}

	if err := handler.setAuthCookie(c, &user, payload.RememberMe); err != nil {
		return internalError(c, "issue token", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": newUserResponse(&user)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(payload.Email, payload.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.fail(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return internalError(c, "login", err)
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, payload.RememberMe); err != nil {
		return internalError(c, "issue token", err)
	}
	return c.JSON(fiber.Map{"user": newUserResponse(&user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": newUserResponse(user)})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	payload := changePasswordPayload{}
	if ok, err := bindJSON(c, &payload); !ok {
		return err
	}

	err := handler.authService.ChangePassword(user.ID, payload.CurrentPassword, payload.NewPassword)
	switch {
	case errors.Is(err, services.ErrPasswordChangeInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "current and new password are required")
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrNewPasswordMustDiffer):
		return apiError(c, fiber.StatusBadRequest, "new password must differ")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case err != nil:
		return internalError(c, "change password", err)
	}

	user.MustChangePassword = false
	if err := handler.setAuthCookie(c, user, false); err != nil {
		return internalError(c, "issue token", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
