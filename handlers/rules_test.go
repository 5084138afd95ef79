package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCheckInWindow(t *testing.T) {
	maths := models.CategoryMathematics
	level := 5
	student := &models.User{Role: models.RoleStudent, Category: &maths, Level: &level}
	start := time.Date(2026, 4, 7, 16, 0, 0, 0, time.UTC)
	session := &models.ClassSession{Category: maths, Level: 5, StartsAt: start, EndsAt: start.Add(time.Hour)}

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"too early", start.Add(-16 * time.Minute), fiber.StatusConflict},
		{"opens fifteen minutes before", start.Add(-15 * time.Minute), 0},
		{"during the session", start.Add(30 * time.Minute), 0},
		{"at the end", start.Add(time.Hour), 0},
		{"after the end", start.Add(time.Hour + time.Second), fiber.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkInAllowed(session, student, tc.now)
			if tc.want == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.want, statusOf(t, err))
		})
	}
}

func TestCheckInRequiresMatchingClass(t *testing.T) {
	maths, english := models.CategoryMathematics, models.CategoryEnglish
	five, six := 5, 6
	start := time.Date(2026, 4, 7, 16, 0, 0, 0, time.UTC)
	session := &models.ClassSession{Category: maths, Level: 5, StartsAt: start, EndsAt: start.Add(time.Hour)}
	now := start.Add(5 * time.Minute)

	for name, student := range map[string]*models.User{
		"other subject":         {Category: &english, Level: &five},
		"other level":           {Category: &maths, Level: &six},
		"not enrolled":          {},
		"level but no category": {Level: &five},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, fiber.StatusForbidden, statusOf(t, checkInAllowed(session, student, now)))
		})
	}
}

func TestCheckInErrorRendersThroughErrorHandler(t *testing.T) {
	start := time.Date(2026, 4, 7, 16, 0, 0, 0, time.UTC)
	session := &models.ClassSession{Category: models.CategoryScience, Level: 3, StartsAt: start, EndsAt: start.Add(time.Hour)}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Post("/check-in", func(c *fiber.Ctx) error {
		return checkInAllowed(session, &models.User{}, start.Add(2*time.Hour))
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/check-in", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, errSessionClosed.Error(), out["error"])
}

func TestIsChildOf(t *testing.T) {
	parent := uuid.New()
	other := uuid.New()

	assert.True(t, isChildOf(&models.User{Role: models.RoleStudent, ParentID: &parent}, parent))
	assert.False(t, isChildOf(&models.User{Role: models.RoleStudent, ParentID: &other}, parent))
	assert.False(t, isChildOf(&models.User{Role: models.RoleStudent}, parent))
	assert.False(t, isChildOf(&models.User{Role: models.RoleAdmin, ParentID: &parent}, parent))
}

func TestApplyRegrade(t *testing.T) {
	q1, q2, q3 := uuid.New(), uuid.New(), uuid.New()
	questions := []models.Question{
		{ID: q1, CorrectAnswer: "a"},
		{ID: q2, CorrectAnswer: "b"},
		{ID: q3, CorrectAnswer: "c"},
	}
	stored := func() *models.Submission {
		return &models.Submission{
			Score:          0,
			TotalQuestions: 2,
			Answers: datatypes.NewJSONType(models.Answers{
				q1.String(): "a",
				q2.String(): "d",
				q3.String(): "c",
			}),
		}
	}

	t.Run("recompute uses the current answer key", func(t *testing.T) {
		sub := stored()
		require.NoError(t, applyRegrade(sub, RegradeRequest{Recompute: true}, questions))
		assert.Equal(t, 2, sub.Score)
		assert.Equal(t, 3, sub.TotalQuestions)
	})

	t.Run("recompute wins over a manual score", func(t *testing.T) {
		sub := stored()
		score := 0
		require.NoError(t, applyRegrade(sub, RegradeRequest{Score: &score, Recompute: true}, questions))
		assert.Equal(t, 2, sub.Score)
	})

	t.Run("manual score", func(t *testing.T) {
		sub := stored()
		score := 2
		require.NoError(t, applyRegrade(sub, RegradeRequest{Score: &score}, nil))
		assert.Equal(t, 2, sub.Score)
		assert.Equal(t, 2, sub.TotalQuestions)
	})

	t.Run("manual score above total", func(t *testing.T) {
		sub := stored()
		score := 3
		err := applyRegrade(sub, RegradeRequest{Score: &score}, nil)
		assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
		assert.Equal(t, 0, sub.Score)
	})

	t.Run("nothing to apply", func(t *testing.T) {
		assert.Equal(t, fiber.StatusBadRequest, statusOf(t, applyRegrade(stored(), RegradeRequest{}, nil)))
	})
}

func TestCheckLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	active := &models.User{Password: string(hash), IsActive: true}
	inactive := &models.User{Password: string(hash), IsActive: false}

	assert.NoError(t, checkLogin(active, "correct horse"))
	assert.Equal(t, fiber.StatusUnauthorized, statusOf(t, checkLogin(active, "wrong")))
	assert.Equal(t, fiber.StatusForbidden, statusOf(t, checkLogin(inactive, "correct horse")))
	assert.Equal(t, fiber.StatusUnauthorized, statusOf(t, checkLogin(inactive, "wrong")))
}
