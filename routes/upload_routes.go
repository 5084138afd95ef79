package routes

import (
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App, h *Handlers) {
	uploads := app.Group("/api/v1/uploads", h.protected(), middleware.AdminRequired())
	uploads.Get("/signature", h.Upload.GenerateUploadSignature)
}
