package routes

import (
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuizRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api/v1")

	quizzes := api.Group("/quizzes", h.protected())
	quizzes.Get("", h.Quiz.ListMyQuizzes)
	quizzes.Post("/:quizId/attempt", middleware.StudentRequired(), h.Attempt.Open)

	attempts := api.Group("/attempts", h.protected(), middleware.StudentRequired())
	attempts.Get("/:quizId", h.Attempt.Get)
	attempts.Put("/:quizId/answers", h.Attempt.Answer)
	attempts.Post("/:quizId/next", h.Attempt.Next)
	attempts.Post("/:quizId/previous", h.Attempt.Previous)
	attempts.Post("/:quizId/goto", h.Attempt.Goto)
	attempts.Post("/:quizId/review", h.Attempt.Review)
	attempts.Post("/:quizId/continue", h.Attempt.Continue)
	attempts.Post("/:quizId/submit", h.Attempt.Submit)
	attempts.Delete("/:quizId", h.Attempt.Discard)

	api.Get("/submissions/me", h.protected(), h.Submission.MySubmissions)
	api.Get("/certificates/me", h.protected(), h.Submission.MyCertificates)

	parent := api.Group("/parent", h.protected(), middleware.ParentRequired())
	parent.Get("/children", h.Submission.ListChildren)
	parent.Get("/children/:childId/submissions", h.Submission.ChildSubmissions)
}
