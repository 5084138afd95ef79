package handlers

import (
	"errors"

	"github.com/anjiri1684/tutoring_center/logger"
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// ErrorHandler renders errors returned by handlers. Unexpected errors are
// reported and hidden behind a generic 500.
func ErrorHandler(reporter *logger.Reporter) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return jsonError(c, fe.Code, fe.Message)
		}
		reporter.Error("Unhandled request error", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := middleware.UserID(c)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}
	return id, nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
