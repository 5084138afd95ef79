package routes

import (
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App, h *Handlers) {
	profile := app.Group("/api/v1/profile", h.protected())
	profile.Get("/me", h.Profile.GetProfile)
	profile.Put("/me", h.Profile.UpdateProfile)
}
