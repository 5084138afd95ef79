package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type fakeQuizzes struct {
	quiz      *models.Quiz
	questions []models.Question
}

func (f *fakeQuizzes) FindQuiz(_ context.Context, id uuid.UUID) (*models.Quiz, error) {
	if f.quiz == nil || f.quiz.ID != id {
		return nil, attempt.ErrQuizNotFound
	}
	return f.quiz, nil
}

func (f *fakeQuizzes) ListQuestions(context.Context, uuid.UUID) ([]models.Question, error) {
	return append([]models.Question(nil), f.questions...), nil
}

type fakeSubmissions struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Submission
}

func (f *fakeSubmissions) FindSubmission(_ context.Context, userID, _ uuid.UUID) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[userID], nil
}

func (f *fakeSubmissions) CreateSubmission(_ context.Context, sub *models.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[sub.UserID]; ok {
		return attempt.ErrAlreadySubmitted
	}
	f.rows[sub.UserID] = sub
	return nil
}

type attemptFixture struct {
	app       *fiber.App
	quiz      *models.Quiz
	questions []models.Question
	subs      *fakeSubmissions
	blocked   uuid.UUID
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()
	quiz := &models.Quiz{ID: uuid.New(), Title: "Fractions", Type: models.QuizTypeQuiz, Category: models.CategoryMathematics}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var questions []models.Question
	for i, correct := range []string{"a", "b", "c"} {
		questions = append(questions, models.Question{
			ID:            uuid.New(),
			QuizID:        quiz.ID,
			Prompt:        "Q",
			CorrectAnswer: correct,
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
	}

	f := &attemptFixture{
		quiz:      quiz,
		questions: questions,
		subs:      &fakeSubmissions{rows: make(map[uuid.UUID]*models.Submission)},
		blocked:   uuid.New(),
	}
	manager := attempt.NewManager(
		&fakeQuizzes{quiz: quiz, questions: questions},
		f.subs,
		attempt.Options{
			Authorize: func(_ context.Context, userID uuid.UUID, _ *models.Quiz) error {
				if userID == f.blocked {
					return attempt.ErrNotTargeted
				}
				return nil
			},
		},
	)
	t.Cleanup(manager.Shutdown)

	h := NewAttemptHandler(manager)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	api := app.Group("/api/v1", middleware.Protected(testSecret))
	api.Post("/quizzes/:quizId/attempt", h.Open)
	api.Get("/attempts/:quizId", h.Get)
	api.Put("/attempts/:quizId/answers", h.Answer)
	api.Post("/attempts/:quizId/next", h.Next)
	api.Post("/attempts/:quizId/goto", h.Goto)
	api.Post("/attempts/:quizId/review", h.Review)
	api.Post("/attempts/:quizId/continue", h.Continue)
	api.Post("/attempts/:quizId/submit", h.Submit)
	api.Delete("/attempts/:quizId", h.Discard)
	f.app = app
	return f
}

func (f *attemptFixture) do(t *testing.T, userID uuid.UUID, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	token, err := middleware.GenerateToken(testSecret, time.Hour, userID, models.RoleStudent)
	require.NoError(t, err)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (f *attemptFixture) path(suffix string) string {
	return "/api/v1/attempts/" + f.quiz.ID.String() + suffix
}

func answerBody(questionID uuid.UUID, choice string) string {
	return `{"question_id":"` + questionID.String() + `","choice":"` + choice + `"}`
}

func TestAttemptFlowOverHTTP(t *testing.T) {
	f := newAttemptFixture(t)
	user := uuid.New()

	status, body := f.do(t, user, fiber.MethodPost, "/api/v1/quizzes/"+f.quiz.ID.String()+"/attempt", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "answering", body["state"])

	status, _ = f.do(t, user, fiber.MethodPut, f.path("/answers"), answerBody(f.questions[0].ID, "a"))
	require.Equal(t, fiber.StatusOK, status)
	status, body = f.do(t, user, fiber.MethodPost, f.path("/next"), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["index"])
	status, _ = f.do(t, user, fiber.MethodPut, f.path("/answers"), answerBody(f.questions[1].ID, "B"))
	require.Equal(t, fiber.StatusOK, status)

	status, body = f.do(t, user, fiber.MethodPost, f.path("/review"), "")
	require.Equal(t, fiber.StatusOK, status)
	review := body["review"].(map[string]interface{})
	assert.EqualValues(t, 1, review["unanswered_count"])
	assert.Equal(t, true, review["show_warning"])

	status, body = f.do(t, user, fiber.MethodPost, f.path("/submit"), "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "submitted", body["state"])
	result := body["result"].(map[string]interface{})
	assert.EqualValues(t, 2, result["score"])
	assert.EqualValues(t, 3, result["total_questions"])
	assert.EqualValues(t, 67, result["percent"])

	status, body = f.do(t, user, fiber.MethodPost, "/api/v1/quizzes/"+f.quiz.ID.String()+"/attempt", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "completed", body["state"])

	status, _ = f.do(t, user, fiber.MethodPost, f.path("/submit"), "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAttemptHTTPErrors(t *testing.T) {
	f := newAttemptFixture(t)
	user := uuid.New()

	status, _ := f.do(t, user, fiber.MethodGet, f.path(""), "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = f.do(t, f.blocked, fiber.MethodPost, "/api/v1/quizzes/"+f.quiz.ID.String()+"/attempt", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = f.do(t, user, fiber.MethodPost, "/api/v1/quizzes/"+uuid.NewString()+"/attempt", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = f.do(t, user, fiber.MethodPost, "/api/v1/quizzes/not-a-uuid/attempt", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = f.do(t, user, fiber.MethodPost, "/api/v1/quizzes/"+f.quiz.ID.String()+"/attempt", "")
	require.Equal(t, fiber.StatusOK, status)

	status, body := f.do(t, user, fiber.MethodPut, f.path("/answers"), answerBody(f.questions[0].ID, "e"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	status, _ = f.do(t, user, fiber.MethodPut, f.path("/answers"), answerBody(uuid.New(), "a"))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = f.do(t, user, fiber.MethodPost, f.path("/submit"), "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = f.do(t, user, fiber.MethodPost, f.path("/continue"), "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = f.do(t, user, fiber.MethodPost, f.path("/goto"), `{"index": 99}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["index"])

	status, _ = f.do(t, user, fiber.MethodDelete, f.path(""), "")
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = f.do(t, user, fiber.MethodDelete, f.path(""), "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAttemptSubmitConflictCarriesStoredResult(t *testing.T) {
	f := newAttemptFixture(t)
	user := uuid.New()

	status, _ := f.do(t, user, fiber.MethodPost, "/api/v1/quizzes/"+f.quiz.ID.String()+"/attempt", "")
	require.Equal(t, fiber.StatusOK, status)

	// A submission written from another session lands first.
	require.NoError(t, f.subs.CreateSubmission(context.Background(), &models.Submission{
		UserID:         user,
		QuizID:         f.quiz.ID,
		Score:          2,
		TotalQuestions: 3,
	}))

	status, _ = f.do(t, user, fiber.MethodPost, f.path("/review"), "")
	require.Equal(t, fiber.StatusOK, status)
	status, body := f.do(t, user, fiber.MethodPost, f.path("/submit"), "")
	assert.Equal(t, fiber.StatusConflict, status)

	view, ok := body["attempt"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "completed", view["state"])
	result, ok := view["result"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, result["score"])
	assert.EqualValues(t, 67, result["percent"])
}
