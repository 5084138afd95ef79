package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizHandler struct {
	db *gorm.DB
}

func NewQuizHandler(db *gorm.DB) *QuizHandler {
	return &QuizHandler{db: db}
}

type QuizRequest struct {
	Title            string          `json:"title" validate:"required"`
	Category         models.Category `json:"category" validate:"required,oneof=mathematics english science chinese humanities"`
	Type             models.QuizType `json:"type" validate:"required,oneof=quiz homework"`
	TimeLimitMinutes int             `json:"time_limit_minutes" validate:"min=0,max=600"`
	Deadline         *time.Time      `json:"deadline"`
	Level            *int            `json:"level" validate:"omitempty,min=1,max=12"`
	AssigneeIDs      []string        `json:"assignee_ids" validate:"dive,uuid"`
	GroupIDs         []string        `json:"group_ids" validate:"dive,uuid"`
}

type QuestionRequest struct {
	Prompt        string  `json:"prompt" validate:"required"`
	OptionA       string  `json:"option_a" validate:"required"`
	OptionB       string  `json:"option_b" validate:"required"`
	OptionC       string  `json:"option_c" validate:"required"`
	OptionD       string  `json:"option_d" validate:"required"`
	CorrectAnswer string  `json:"correct_answer" validate:"required,oneof=a b c d"`
	ImageURL      *string `json:"image_url" validate:"omitempty,url"`
}

var errInvalidTargets = errors.New("one or more assignee or group IDs are invalid")

func (h *QuizHandler) resolveTargets(tx *gorm.DB, req QuizRequest) ([]*models.User, []*models.Group, error) {
	var assignees []*models.User
	if len(req.AssigneeIDs) > 0 {
		if err := tx.Where("id IN ? AND role = ?", req.AssigneeIDs, models.RoleStudent).Find(&assignees).Error; err != nil {
			return nil, nil, err
		}
		if len(assignees) != len(req.AssigneeIDs) {
			return nil, nil, errInvalidTargets
		}
	}
	var groups []*models.Group
	if len(req.GroupIDs) > 0 {
		if err := tx.Where("id IN ?", req.GroupIDs).Find(&groups).Error; err != nil {
			return nil, nil, err
		}
		if len(groups) != len(req.GroupIDs) {
			return nil, nil, errInvalidTargets
		}
	}
	return assignees, groups, nil
}

func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req QuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Type == models.QuizTypeHomework && req.Deadline == nil {
		return jsonError(c, fiber.StatusBadRequest, "Homework needs a deadline")
	}

	quiz := models.Quiz{
		Title:            req.Title,
		Category:         req.Category,
		Type:             req.Type,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Deadline:         req.Deadline,
		Level:            req.Level,
		CreatedByID:      adminID,
	}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		assignees, groups, err := h.resolveTargets(tx, req)
		if err != nil {
			return err
		}
		quiz.Assignees = assignees
		quiz.Groups = groups
		return tx.Create(&quiz).Error
	})
	if errors.Is(err, errInvalidTargets) {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create quiz")
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	query := h.db.Preload("Groups").Order("created_at desc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if quizType := c.Query("type"); quizType != "" {
		query = query.Where("type = ?", quizType)
	}
	var quizzes []models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes")
	}
	return c.JSON(quizzes)
}

func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	var quiz models.Quiz
	err = h.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Assignees").
		Preload("Groups").
		First(&quiz, "id = ?", quizID).Error
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Quiz not found")
	}
	return c.JSON(quiz)
}

func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	var req QuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		assignees, groups, err := h.resolveTargets(tx, req)
		if err != nil {
			return err
		}
		quiz.Title = req.Title
		quiz.Category = req.Category
		quiz.Type = req.Type
		quiz.TimeLimitMinutes = req.TimeLimitMinutes
		quiz.Deadline = req.Deadline
		quiz.Level = req.Level
		if err := tx.Save(&quiz).Error; err != nil {
			return err
		}
		if err := tx.Model(&quiz).Association("Assignees").Replace(assignees); err != nil {
			return err
		}
		return tx.Model(&quiz).Association("Groups").Replace(groups)
	})
	if errors.Is(err, errInvalidTargets) {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update quiz")
	}
	return c.JSON(quiz)
}

func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, "id = ?", quizID).Error; err != nil {
			return err
		}
		var submissions int64
		if err := tx.Model(&models.Submission{}).Where("quiz_id = ?", quizID).Count(&submissions).Error; err != nil {
			return err
		}
		if submissions > 0 {
			return errQuizHasSubmissions
		}
		if err := tx.Model(&quiz).Association("Assignees").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&quiz).Association("Groups").Clear(); err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return jsonError(c, fiber.StatusNotFound, "Quiz not found")
	case errors.Is(err, errQuizHasSubmissions):
		return jsonError(c, fiber.StatusConflict, err.Error())
	case err != nil:
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

var errQuizHasSubmissions = errors.New("quiz already has submissions")

func (h *QuizHandler) AddQuestion(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	var req QuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var count int64
	if err := h.db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	if count == 0 {
		return jsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	question := models.Question{
		QuizID:        quizID,
		Prompt:        req.Prompt,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		ImageURL:      req.ImageURL,
	}
	if err := h.db.Create(&question).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

func (h *QuizHandler) ListQuestions(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	var questions []models.Question
	if err := h.db.Where("quiz_id = ?", quizID).Order("created_at asc").Find(&questions).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch questions")
	}
	return c.JSON(questions)
}

func (h *QuizHandler) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := paramUUID(c, "questionId")
	if err != nil {
		return err
	}
	var req QuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var question models.Question
	if err := h.db.First(&question, "id = ?", questionID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Question not found")
	}
	question.Prompt = req.Prompt
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectAnswer = req.CorrectAnswer
	question.ImageURL = req.ImageURL
	if err := h.db.Save(&question).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}
	return c.JSON(question)
}

func (h *QuizHandler) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := paramUUID(c, "questionId")
	if err != nil {
		return err
	}
	result := h.db.Delete(&models.Question{}, "id = ?", questionID)
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "Question not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type submissionRow struct {
	models.Submission
	StudentName string `json:"student_name"`
	Percent     int    `json:"percent"`
}

func (h *QuizHandler) ListQuizSubmissions(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	var submissions []models.Submission
	if err := h.db.Preload("User").Where("quiz_id = ?", quizID).Order("submitted_at asc").Find(&submissions).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	rows := make([]submissionRow, len(submissions))
	for i, s := range submissions {
		rows[i] = submissionRow{
			Submission:  s,
			StudentName: s.User.FullName,
			Percent:     attempt.Percent(s.Score, s.TotalQuestions),
		}
	}
	return c.JSON(rows)
}

type RegradeRequest struct {
	Score     *int `json:"score" validate:"omitempty,min=0"`
	Recompute bool `json:"recompute"`
}

// applyRegrade rescores sub. With Recompute the stored answers are scored
// against questions; otherwise the manual score is taken as is.
func applyRegrade(sub *models.Submission, req RegradeRequest, questions []models.Question) error {
	if req.Recompute {
		sub.Score = attempt.Score(questions, sub.Answers.Data())
		sub.TotalQuestions = len(questions)
		return nil
	}
	if req.Score == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Provide a score or set recompute")
	}
	if *req.Score > sub.TotalQuestions {
		return fiber.NewError(fiber.StatusBadRequest, "Score cannot exceed the number of questions")
	}
	sub.Score = *req.Score
	return nil
}

// RegradeSubmission either sets a manual score or, with "recompute", scores
// the stored answers again against the quiz's current answer key.
func (h *QuizHandler) RegradeSubmission(c *fiber.Ctx) error {
	submissionID, err := paramUUID(c, "submissionId")
	if err != nil {
		return err
	}
	var req RegradeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Score == nil && !req.Recompute {
		return jsonError(c, fiber.StatusBadRequest, "Provide a score or set recompute")
	}

	var sub models.Submission
	if err := h.db.First(&sub, "id = ?", submissionID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Submission not found")
	}

	var questions []models.Question
	if req.Recompute {
		if err := h.db.Where("quiz_id = ?", sub.QuizID).Find(&questions).Error; err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to load questions")
		}
	}
	if err := applyRegrade(&sub, req, questions); err != nil {
		return err
	}

	err = h.db.Model(&sub).Updates(map[string]interface{}{
		"score":           sub.Score,
		"total_questions": sub.TotalQuestions,
	}).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update submission")
	}
	return c.JSON(sub)
}

type learnerQuiz struct {
	models.Quiz
	Completed bool `json:"completed"`
	Score     *int `json:"score,omitempty"`
	Overdue   bool `json:"overdue"`
}

// ListMyQuizzes shows a student the quizzes aimed at them with completion state.
func (h *QuizHandler) ListMyQuizzes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var user models.User
	if err := h.db.Preload("Groups").First(&user, "id = ?", userID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}

	var quizzes []models.Quiz
	if err := h.db.Preload("Assignees").Preload("Groups").Order("created_at desc").Find(&quizzes).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch quizzes")
	}
	visible := services.Visible(quizzes, &user)

	var submissions []models.Submission
	if err := h.db.Where("user_id = ?", userID).Find(&submissions).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}
	scores := make(map[uuid.UUID]int, len(submissions))
	for _, s := range submissions {
		scores[s.QuizID] = s.Score
	}

	now := time.Now()
	out := make([]learnerQuiz, len(visible))
	for i, q := range visible {
		q.Assignees = nil
		q.Groups = nil
		item := learnerQuiz{Quiz: q, Overdue: q.DeadlinePassed(now)}
		if score, ok := scores[q.ID]; ok {
			item.Completed = true
			item.Score = &score
			item.Overdue = false
		}
		out[i] = item
	}
	return c.JSON(out)
}
