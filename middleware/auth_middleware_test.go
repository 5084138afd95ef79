package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(testSecret), func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})
	app.Get("/admin", Protected(testSecret), AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestProtected(t *testing.T) {
	app := testApp()
	token, err := GenerateToken(testSecret, time.Hour, uuid.New(), models.RoleStudent)
	require.NoError(t, err)
	expired, err := GenerateToken(testSecret, -time.Hour, uuid.New(), models.RoleStudent)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, request(t, app, "/me", token))
	assert.Contains(t, []int{fiber.StatusBadRequest, fiber.StatusUnauthorized}, request(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/me", expired))
}

func TestAdminRequired(t *testing.T) {
	app := testApp()
	student, _ := GenerateToken(testSecret, time.Hour, uuid.New(), models.RoleStudent)
	admin, _ := GenerateToken(testSecret, time.Hour, uuid.New(), models.RoleAdmin)

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/admin", student))
	assert.Equal(t, fiber.StatusNoContent, request(t, app, "/admin", admin))
}

func TestParseToken(t *testing.T) {
	id := uuid.New()
	token, err := GenerateToken(testSecret, time.Hour, id, models.RoleParent)
	require.NoError(t, err)

	gotID, role, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, models.RoleParent, role)

	_, _, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}
