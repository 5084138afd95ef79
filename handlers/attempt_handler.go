package handlers

import (
	"errors"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/gofiber/fiber/v2"
)

type AttemptHandler struct {
	attempts *attempt.Manager
}

func NewAttemptHandler(attempts *attempt.Manager) *AttemptHandler {
	return &AttemptHandler{attempts: attempts}
}

type AnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Choice     string `json:"choice" validate:"required,oneof=a b c d A B C D"`
}

type GotoRequest struct {
	Index *int `json:"index" validate:"required"`
}

func attemptStatus(err error) int {
	switch {
	case errors.Is(err, attempt.ErrQuizNotFound), errors.Is(err, attempt.ErrAttemptNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, attempt.ErrNotTargeted):
		return fiber.StatusForbidden
	case errors.Is(err, attempt.ErrAlreadySubmitted), errors.Is(err, attempt.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, attempt.ErrDeadlinePassed):
		return fiber.StatusGone
	case errors.Is(err, attempt.ErrUnknownQuestion), errors.Is(err, attempt.ErrInvalidChoice):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func attemptError(c *fiber.Ctx, err error) error {
	status := attemptStatus(err)
	if status == fiber.StatusInternalServerError {
		return err
	}
	return jsonError(c, status, err.Error())
}

// withAttempt resolves the caller's attempt for :quizId.
func (h *AttemptHandler) withAttempt(c *fiber.Ctx, fn func(a *attempt.Attempt) (attempt.View, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	a, err := h.attempts.Get(userID, quizID)
	if err != nil {
		return attemptError(c, err)
	}
	view, err := fn(a)
	if err != nil {
		if errors.Is(err, attempt.ErrAlreadySubmitted) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "attempt": view})
		}
		return attemptError(c, err)
	}
	return c.JSON(view)
}

func (h *AttemptHandler) Open(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	view, err := h.attempts.Open(c.UserContext(), userID, quizID)
	if err != nil {
		return attemptError(c, err)
	}
	return c.JSON(view)
}

func (h *AttemptHandler) Get(c *fiber.Ctx) error {
	return h.withAttempt(c, func(a *attempt.Attempt) (attempt.View, error) {
		return a.View(), nil
	})
}

func (h *AttemptHandler) Answer(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.withAttempt(c, func(a *attempt.Attempt) (attempt.View, error) {
		return a.Select(req.QuestionID, req.Choice)
	})
}

func (h *AttemptHandler) Next(c *fiber.Ctx) error {
	return h.withAttempt(c, (*attempt.Attempt).Next)
}

func (h *AttemptHandler) Previous(c *fiber.Ctx) error {
	return h.withAttempt(c, (*attempt.Attempt).Previous)
}

func (h *AttemptHandler) Goto(c *fiber.Ctx) error {
	var req GotoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.withAttempt(c, func(a *attempt.Attempt) (attempt.View, error) {
		return a.Goto(*req.Index)
	})
}

func (h *AttemptHandler) Review(c *fiber.Ctx) error {
	return h.withAttempt(c, (*attempt.Attempt).EnterReview)
}

func (h *AttemptHandler) Continue(c *fiber.Ctx) error {
	return h.withAttempt(c, (*attempt.Attempt).ContinueEditing)
}

func (h *AttemptHandler) Submit(c *fiber.Ctx) error {
	return h.withAttempt(c, func(a *attempt.Attempt) (attempt.View, error) {
		return a.FinalSubmit(c.UserContext())
	})
}

func (h *AttemptHandler) Discard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	if err := h.attempts.Discard(c.UserContext(), userID, quizID); err != nil {
		return attemptError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
