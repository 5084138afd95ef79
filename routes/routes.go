package routes

import (
	"github.com/anjiri1684/tutoring_center/handlers"
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler the API mounts.
type Handlers struct {
	JWTSecret string

	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Admin       *handlers.AdminHandler
	Quiz        *handlers.QuizHandler
	Attempt     *handlers.AttemptHandler
	Submission  *handlers.SubmissionHandler
	Attendance  *handlers.AttendanceHandler
	Report      *handlers.ReportHandler
	Messaging   *handlers.MessagingHandler
	Upload      *handlers.UploadHandler
	HealthCheck fiber.Handler
}

func (h *Handlers) protected() fiber.Handler {
	return middleware.Protected(h.JWTSecret)
}

func Setup(app *fiber.App, h *Handlers) {
	PublicRoutes(app, h)
	AuthRoutes(app, h)
	ProfileRoutes(app, h)
	AdminRoutes(app, h)
	QuizRoutes(app, h)
	AttendanceRoutes(app, h)
	MessagingRoutes(app, h)
	UploadRoutes(app, h)
}
