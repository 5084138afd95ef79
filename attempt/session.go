package attempt

import "github.com/anjiri1684/tutoring_center/models"

// Session is the learner's in-progress answer sheet for one quiz.
// It is not safe for concurrent use; Attempt serializes access to it.
type Session struct {
	order   []string
	known   map[string]struct{}
	index   int
	answers map[string]Choice
}

func NewSession(questionIDs []string) *Session {
	known := make(map[string]struct{}, len(questionIDs))
	for _, id := range questionIDs {
		known[id] = struct{}{}
	}
	return &Session{
		order:   append([]string(nil), questionIDs...),
		known:   known,
		answers: make(map[string]Choice, len(questionIDs)),
	}
}

func (s *Session) Len() int   { return len(s.order) }
func (s *Session) Index() int { return s.index }

// Select records choice for the question, replacing any earlier selection.
func (s *Session) Select(questionID string, choice Choice) error {
	if _, ok := s.known[questionID]; !ok {
		return ErrUnknownQuestion
	}
	if _, err := ParseChoice(string(choice)); err != nil {
		return err
	}
	s.answers[questionID] = choice
	return nil
}

func (s *Session) Answer(questionID string) (Choice, bool) {
	c, ok := s.answers[questionID]
	return c, ok
}

func (s *Session) Next() int     { return s.Goto(s.index + 1) }
func (s *Session) Previous() int { return s.Goto(s.index - 1) }

// Goto moves the question pointer, clamped to the question range.
func (s *Session) Goto(i int) int {
	if i > len(s.order)-1 {
		i = len(s.order) - 1
	}
	if i < 0 {
		i = 0
	}
	s.index = i
	return s.index
}

func (s *Session) AllAnswered() bool {
	for _, id := range s.order {
		if _, ok := s.answers[id]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) Unanswered() int {
	return len(s.order) - len(s.answers)
}

// Snapshot copies the answer map. Unanswered questions have no key.
func (s *Session) Snapshot() models.Answers {
	out := make(models.Answers, len(s.answers))
	for id, c := range s.answers {
		out[id] = string(c)
	}
	return out
}

// Restore loads previously cached answers, dropping entries that no longer
// match a question of the quiz or a valid letter.
func (s *Session) Restore(answers models.Answers) {
	for id, raw := range answers {
		c, err := ParseChoice(raw)
		if err != nil {
			continue
		}
		_ = s.Select(id, c)
	}
}
