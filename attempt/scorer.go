package attempt

import (
	"math"

	"github.com/anjiri1684/tutoring_center/models"
)

// Score counts the questions whose recorded answer equals the stored correct
// letter. Missing answers never match.
func Score(questions []models.Question, answers models.Answers) int {
	score := 0
	for _, q := range questions {
		given, ok := answers[q.ID.String()]
		if !ok || normalize(given) == "" {
			continue
		}
		if normalize(given) == normalize(q.CorrectAnswer) {
			score++
		}
	}
	return score
}

func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}
