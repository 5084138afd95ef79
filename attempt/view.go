package attempt

import (
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

type QuestionView struct {
	ID       string            `json:"id"`
	Prompt   string            `json:"prompt"`
	Options  map[Choice]string `json:"options"`
	ImageURL *string           `json:"image_url,omitempty"`
	Selected string            `json:"selected,omitempty"`
}

type Result struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percent        int            `json:"percent"`
	Answers        models.Answers `json:"answers"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	Forced         bool           `json:"forced"`
}

// View is what the learner's screen renders for the current state.
type View struct {
	QuizID           uuid.UUID       `json:"quiz_id"`
	Title            string          `json:"title"`
	Type             models.QuizType `json:"type"`
	State            State           `json:"state"`
	Index            int             `json:"index"`
	TotalQuestions   int             `json:"total_questions"`
	Question         *QuestionView   `json:"question,omitempty"`
	Answers          models.Answers  `json:"answers,omitempty"`
	Unanswered       int             `json:"unanswered"`
	AllAnswered      bool            `json:"all_answered"`
	TimeLimitMinutes int             `json:"time_limit_minutes"`
	RemainingSeconds *int            `json:"remaining_seconds,omitempty"`
	TimeExpired      bool            `json:"time_expired,omitempty"`
	Review           *Review         `json:"review,omitempty"`
	Result           *Result         `json:"result,omitempty"`
}

func (a *Attempt) viewLocked() View {
	quiz := a.quiz.Quiz
	v := View{
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		Type:             quiz.Type,
		State:            a.state,
		Index:            a.session.Index(),
		TotalQuestions:   a.session.Len(),
		Unanswered:       a.session.Unanswered(),
		AllAnswered:      a.session.AllAnswered(),
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		TimeExpired:      a.expired,
	}
	if a.timer != nil {
		remaining := a.timer.Remaining()
		v.RemainingSeconds = &remaining
	}

	switch a.state {
	case StateAnswering:
		v.Answers = a.session.Snapshot()
		if v.TotalQuestions > 0 {
			v.Question = questionView(a.quiz.Questions[v.Index], a.session)
		}
	case StateReviewing:
		v.Answers = a.session.Snapshot()
		review := BuildReview(a.quiz.Questions, a.session)
		v.Review = &review
	case StateSubmitted:
		v.Result = resultOf(a.submission, a.forced)
	case StateCompleted:
		v.Result = resultOf(a.submission, false)
	}
	return v
}

func questionView(q models.Question, s *Session) *QuestionView {
	qv := &QuestionView{
		ID:     q.ID.String(),
		Prompt: q.Prompt,
		Options: map[Choice]string{
			ChoiceA: q.OptionA,
			ChoiceB: q.OptionB,
			ChoiceC: q.OptionC,
			ChoiceD: q.OptionD,
		},
		ImageURL: q.ImageURL,
	}
	if c, ok := s.Answer(qv.ID); ok {
		qv.Selected = string(c)
	}
	return qv
}

func resultOf(sub *models.Submission, forced bool) *Result {
	if sub == nil {
		return nil
	}
	return &Result{
		Score:          sub.Score,
		TotalQuestions: sub.TotalQuestions,
		Percent:        Percent(sub.Score, sub.TotalQuestions),
		Answers:        sub.Answers.Data(),
		SubmittedAt:    sub.SubmittedAt,
		Forced:         forced,
	}
}

// CompletedView is shown when the learner reopens a quiz they already submitted.
func CompletedView(quiz *models.Quiz, sub *models.Submission) View {
	return View{
		QuizID:           quiz.ID,
		Title:            quiz.Title,
		Type:             quiz.Type,
		State:            StateCompleted,
		TotalQuestions:   sub.TotalQuestions,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		Result:           resultOf(sub, false),
	}
}
