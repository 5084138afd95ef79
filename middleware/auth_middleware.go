package middleware

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidClaims = errors.New("invalid token claims")

func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func claimsOf(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// UserID returns the authenticated user's id from the JWT claims.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := claimsOf(c)
	if !ok {
		return uuid.Nil, ErrInvalidClaims
	}
	raw, _ := claims["user_id"].(string)
	return uuid.Parse(raw)
}

func Role(c *fiber.Ctx) models.Role {
	claims, ok := claimsOf(c)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return models.Role(role)
}

func requireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Forbidden: %s access required", role),
			})
		}
		return c.Next()
	}
}

func AdminRequired() fiber.Handler   { return requireRole(models.RoleAdmin) }
func ParentRequired() fiber.Handler  { return requireRole(models.RoleParent) }
func StudentRequired() fiber.Handler { return requireRole(models.RoleStudent) }
