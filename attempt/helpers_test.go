package attempt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

type memQuizStore struct {
	quizzes   map[uuid.UUID]*models.Quiz
	questions map[uuid.UUID][]models.Question
	err       error
}

func newMemQuizStore() *memQuizStore {
	return &memQuizStore{
		quizzes:   make(map[uuid.UUID]*models.Quiz),
		questions: make(map[uuid.UUID][]models.Question),
	}
}

func (s *memQuizStore) FindQuiz(_ context.Context, id uuid.UUID) (*models.Quiz, error) {
	if s.err != nil {
		return nil, s.err
	}
	q, ok := s.quizzes[id]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *memQuizStore) ListQuestions(_ context.Context, quizID uuid.UUID) ([]models.Question, error) {
	return append([]models.Question(nil), s.questions[quizID]...), nil
}

// addQuiz stores a quiz whose questions have the given correct letters,
// created one minute apart in order.
func (s *memQuizStore) addQuiz(limitMinutes int, correct ...string) (*models.Quiz, []models.Question) {
	quiz := &models.Quiz{
		ID:               uuid.New(),
		Title:            "Fractions",
		Category:         models.CategoryMathematics,
		Type:             models.QuizTypeQuiz,
		TimeLimitMinutes: limitMinutes,
	}
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	questions := make([]models.Question, len(correct))
	for i, c := range correct {
		questions[i] = models.Question{
			ID:            uuid.New(),
			QuizID:        quiz.ID,
			Prompt:        "Question",
			OptionA:       "A",
			OptionB:       "B",
			OptionC:       "C",
			OptionD:       "D",
			CorrectAnswer: c,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
	}
	s.quizzes[quiz.ID] = quiz
	s.questions[quiz.ID] = questions
	return quiz, questions
}

type memSubmissionStore struct {
	mu      sync.Mutex
	rows    map[[2]uuid.UUID]*models.Submission
	failing error
	writes  int
}

func newMemSubmissionStore() *memSubmissionStore {
	return &memSubmissionStore{rows: make(map[[2]uuid.UUID]*models.Submission)}
}

func (s *memSubmissionStore) FindSubmission(_ context.Context, userID, quizID uuid.UUID) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[[2]uuid.UUID{userID, quizID}], nil
}

func (s *memSubmissionStore) CreateSubmission(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return s.failing
	}
	k := [2]uuid.UUID{sub.UserID, sub.QuizID}
	if _, ok := s.rows[k]; ok {
		return ErrAlreadySubmitted
	}
	sub.ID = uuid.New()
	s.rows[k] = sub
	s.writes++
	return nil
}

func (s *memSubmissionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) SendToUser(_ uuid.UUID, eventType string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) count(eventType string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == eventType {
			c++
		}
	}
	return c
}

// manualTicker never fires on its own; tests drive timers through Tick.
type manualTicker struct{ c chan time.Time }

func (m manualTicker) C() <-chan time.Time { return m.c }
func (m manualTicker) Stop()               {}

func newManualTicker(time.Duration) Ticker {
	return manualTicker{c: make(chan time.Time)}
}

var errWriteFailed = errors.New("connection reset")
