package handlers

import (
	"errors"
	"fmt"

	"launchtracker/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500.
func respondServiceError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCollectionNameTaken),
		errors.Is(err, services.ErrDuplicateLaunch):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// respondValidationError renders a field-by-field 400 for validator failures.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
