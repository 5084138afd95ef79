package routes

import (
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *Handlers) {
	admin := app.Group("/api/v1/admin", h.protected(), middleware.AdminRequired())

	users := admin.Group("/users")
	users.Get("", h.Admin.ListUsers)
	users.Post("", h.Admin.CreateUser)
	users.Put("/:userId/status", h.Admin.UpdateUserStatus)
	users.Delete("/:userId", h.Admin.DeleteUser)

	groups := admin.Group("/groups")
	groups.Post("", h.Admin.CreateGroup)
	groups.Get("", h.Admin.ListGroups)
	groups.Put("/:groupId/members", h.Admin.SetGroupMembers)

	quizzes := admin.Group("/quizzes")
	quizzes.Post("", h.Quiz.CreateQuiz)
	quizzes.Get("", h.Quiz.ListQuizzes)
	quizzes.Get("/:quizId", h.Quiz.GetQuiz)
	quizzes.Put("/:quizId", h.Quiz.UpdateQuiz)
	quizzes.Delete("/:quizId", h.Quiz.DeleteQuiz)
	quizzes.Post("/:quizId/questions", h.Quiz.AddQuestion)
	quizzes.Get("/:quizId/questions", h.Quiz.ListQuestions)
	quizzes.Get("/:quizId/submissions", h.Quiz.ListQuizSubmissions)

	questions := admin.Group("/questions")
	questions.Put("/:questionId", h.Quiz.UpdateQuestion)
	questions.Delete("/:questionId", h.Quiz.DeleteQuestion)

	admin.Patch("/submissions/:submissionId/score", h.Quiz.RegradeSubmission)

	sessions := admin.Group("/sessions")
	sessions.Post("", h.Attendance.CreateSession)
	sessions.Get("", h.Attendance.ListSessions)
	sessions.Get("/:sessionId/attendance", h.Attendance.SessionAttendance)

	reports := admin.Group("/reports")
	reports.Get("/quizzes/:quizId", h.Report.QuizReport)
	reports.Get("/attendance", h.Report.AttendanceReport)
}
