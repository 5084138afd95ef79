package handlers

import (
	"errors"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionHandler struct {
	db *gorm.DB
}

func NewSubmissionHandler(db *gorm.DB) *SubmissionHandler {
	return &SubmissionHandler{db: db}
}

type resultRow struct {
	models.Submission
	QuizTitle string          `json:"quiz_title"`
	QuizType  models.QuizType `json:"quiz_type"`
	Percent   int             `json:"percent"`
}

func (h *SubmissionHandler) results(studentID uuid.UUID) ([]resultRow, error) {
	var submissions []models.Submission
	err := h.db.Preload("Quiz").
		Where("user_id = ?", studentID).
		Order("submitted_at desc").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	rows := make([]resultRow, len(submissions))
	for i, s := range submissions {
		rows[i] = resultRow{
			Submission: s,
			QuizTitle:  s.Quiz.Title,
			QuizType:   s.Quiz.Type,
			Percent:    attempt.Percent(s.Score, s.TotalQuestions),
		}
	}
	return rows, nil
}

func (h *SubmissionHandler) MySubmissions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	rows, err := h.results(userID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}
	return c.JSON(rows)
}

func (h *SubmissionHandler) ListChildren(c *fiber.Ctx) error {
	parentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var children []models.User
	if err := h.db.Where("parent_id = ?", parentID).Order("full_name asc").Find(&children).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch children")
	}
	return c.JSON(children)
}

func isChildOf(child *models.User, parentID uuid.UUID) bool {
	return child.Role == models.RoleStudent && child.ParentID != nil && *child.ParentID == parentID
}

// ChildSubmissions lets a parent read the results of one of their own children.
func (h *SubmissionHandler) ChildSubmissions(c *fiber.Ctx) error {
	parentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	childID, err := paramUUID(c, "childId")
	if err != nil {
		return err
	}

	var child models.User
	if err := h.db.First(&child, "id = ?", childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusForbidden, "Not your child")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch child")
	}
	if !isChildOf(&child, parentID) {
		return jsonError(c, fiber.StatusForbidden, "Not your child")
	}

	rows, err := h.results(childID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}
	return c.JSON(rows)
}

func (h *SubmissionHandler) MyCertificates(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var certificates []models.Certificate
	if err := h.db.Where("student_id = ?", userID).Order("completion_date desc").Find(&certificates).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch certificates")
	}
	return c.JSON(certificates)
}
