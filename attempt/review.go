package attempt

import "github.com/anjiri1684/tutoring_center/models"

const notAnswered = "not answered"

type ReviewItem struct {
	Index      int    `json:"index"`
	QuestionID string `json:"question_id"`
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer"`
	Answered   bool   `json:"answered"`
}

type Review struct {
	Items           []ReviewItem `json:"items"`
	UnansweredCount int          `json:"unanswered_count"`
	ShowWarning     bool         `json:"show_warning"`
}

// BuildReview is read-only over the session.
func BuildReview(questions []models.Question, s *Session) Review {
	r := Review{Items: make([]ReviewItem, 0, len(questions))}
	for i, q := range questions {
		item := ReviewItem{Index: i, QuestionID: q.ID.String(), Prompt: q.Prompt, Answer: notAnswered}
		if c, ok := s.Answer(item.QuestionID); ok {
			item.Answer = string(c)
			item.Answered = true
		} else {
			r.UnansweredCount++
		}
		r.Items = append(r.Items, item)
	}
	r.ShowWarning = r.UnansweredCount > 0
	return r
}
