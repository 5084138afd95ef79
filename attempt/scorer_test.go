package attempt

import (
	"testing"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func questionsWith(correct ...string) []models.Question {
	qs := make([]models.Question, len(correct))
	for i, c := range correct {
		qs[i] = models.Question{ID: uuid.New(), CorrectAnswer: c}
	}
	return qs
}

func TestScoreExample(t *testing.T) {
	qs := questionsWith("a", "b", "c")
	answers := models.Answers{
		qs[0].ID.String(): "a",
		qs[1].ID.String(): "b",
		qs[2].ID.String(): "d",
	}

	score := Score(qs, answers)

	assert.Equal(t, 2, score)
	assert.Equal(t, 67, Percent(score, len(qs)))
}

func TestScore(t *testing.T) {
	qs := questionsWith("a", "B", "c", "d")

	tests := []struct {
		name    string
		answers models.Answers
		want    int
	}{
		{name: "no answers", answers: models.Answers{}, want: 0},
		{name: "all correct", answers: models.Answers{
			qs[0].ID.String(): "a", qs[1].ID.String(): "b", qs[2].ID.String(): "c", qs[3].ID.String(): "d",
		}, want: 4},
		{name: "case insensitive", answers: models.Answers{
			qs[0].ID.String(): "A", qs[1].ID.String(): "b",
		}, want: 2},
		{name: "blank never matches", answers: models.Answers{qs[0].ID.String(): ""}, want: 0},
		{name: "foreign keys ignored", answers: models.Answers{uuid.NewString(): "a"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(qs, tt.answers)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, len(qs))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 100, Percent(3, 3))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 50, Percent(1, 2))
}
