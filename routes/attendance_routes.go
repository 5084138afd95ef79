package routes

import (
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/gofiber/fiber/v2"
)

func AttendanceRoutes(app *fiber.App, h *Handlers) {
	attendance := app.Group("/api/v1/attendance", h.protected(), middleware.StudentRequired())
	attendance.Post("/check-in", h.Attendance.CheckIn)
}
